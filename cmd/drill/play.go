package main

import (
	"bufio"
	"drill/metrics"
	"drill/oracle"
	"drill/runner"
	"drill/selector"
	"drill/session"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Drill the configured opening interactively",
	Long: `Drill the configured opening interactively.

Type moves in algebraic notation. Other commands:
  :status            show the current line
  :variations        list the first replies and whether they are drilled
  :toggle <move>     include or exclude a first reply
  :reset             start the line over
  :quit              stop`,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	tree, err := loadTree(cfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	if cfg.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		collector = metrics.NewPrometheusCollector(registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
		defer server.Close()
		log.Info().Msgf("serving metrics on %s", cfg.MetricsAddr)
	}

	selectorOptions := []selector.Option{}
	if cfg.Seed != 0 {
		selectorOptions = append(selectorOptions, selector.WithSeed(cfg.Seed))
	}

	eng, err := session.Start(tree, cfg.Prefix,
		session.WithSelector(selector.New(selectorOptions...)),
		session.WithMetrics(collector),
	)
	if err != nil {
		return err
	}

	r := runner.New(eng, runner.WithDelay(cfg.ReplyDelay))
	c := newConsole(r, cmd.OutOrStdout())
	c.play(cmd.InOrStdin())

	if cfg.RecordsDir != "" {
		return writeRecords(cfg.RecordsDir, r.Records())
	}
	return nil
}

func writeRecords(dir string, records []metrics.DrillMetric) error {
	if len(records) == 0 {
		return nil
	}
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := writer.WriteDrillRecords(records); err != nil {
		return err
	}
	log.Info().Msgf("wrote %d drill records to %s", len(records), writer.Dir())
	return nil
}

// console is the text front end of a drill. Automated replies are printed
// from timer goroutines, so every write goes through mu.
type console struct {
	r   *runner.Runner
	mu  sync.Mutex
	out io.Writer
}

func newConsole(r *runner.Runner, out io.Writer) *console {
	c := &console{r: r, out: out}
	r.Subscribe(c.onEvent)
	return c
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, format, args...)
}

func (c *console) play(in io.Reader) {
	snap := c.r.Snapshot()
	c.printf("Drilling from %s\n", strings.Join(snap.Path, " "))
	c.r.Begin()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !c.handle(scanner.Text()) {
			return
		}
	}
}

// handle processes one line of input and reports whether to keep going.
func (c *console) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	command, arg, _ := strings.Cut(line, " ")
	switch command {
	case ":quit", ":q":
		return false
	case ":reset":
		c.r.Reset()
		c.printf("Starting over\n")
	case ":status":
		c.status()
	case ":variations":
		c.variations()
	case ":toggle":
		if err := c.r.ToggleVariation(strings.TrimSpace(arg)); err != nil {
			c.printf("%s\n", err)
			return true
		}
		c.variations()
	default:
		c.submit(line)
	}
	return true
}

func (c *console) submit(input string) {
	result, err := c.r.Submit(input)
	var illegal *session.IllegalTransitionError
	switch {
	case errors.Is(err, oracle.ErrRejected):
		c.printf("%s is not a move\n", input)
	case errors.As(err, &illegal) && illegal.Turn == session.Complete:
		c.printf("The line is over, :reset to go again\n")
	case errors.As(err, &illegal):
		c.printf("Wait for the reply\n")
	case err != nil:
		c.printf("%s\n", err)
	case !result.Accepted:
		c.printf("%s is not in the book, try again\n", result.Move)
	}
}

func (c *console) status() {
	snap := c.r.Snapshot()
	c.printf("%s (%s)\n", strings.Join(snap.Path, " "), snap.Turn)
}

func (c *console) variations() {
	for _, v := range c.r.Variations() {
		mark := " "
		if v.Enabled {
			mark = "x"
		}
		c.printf("[%s] %-8s %5.1f%%\n", mark, v.Move, v.Probability*100)
	}
}

func (c *console) onEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventAutomatedMoved:
		c.printf("... %s\n", ev.Move)
	case session.EventLearnerMoved:
		c.printf("%s, correct\n", ev.Move)
	case session.EventExhausted:
		c.printf("No replies left in the book\n")
	}
	if ev.Record != nil {
		c.printf("Line complete: %s (%d attempts, %d misses)\n",
			strings.Join(ev.Record.Line, " "), ev.Record.Attempts, ev.Record.Rejections)
	}
}
