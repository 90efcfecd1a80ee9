// Command nearby answers topic and question proximity queries over a
// point set read from standard input, or optionally an OpenStreetMap
// PBF extract.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	nearby_search "nearby_search"
	"nearby_search/internal/config"
	"nearby_search/internal/diagnostics"
	"nearby_search/internal/ingest"
	"nearby_search/internal/inputformat"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logFile     string
		configPath  string
		osmPath     string
		dumpGeoJSON string
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Answer topic and question proximity queries over a 2-d point set",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog, err := newLogger(logFile)
			if err != nil {
				return errors.Wrap(err, "configuring logger")
			}
			defer closeLog()

			tuning, err := config.Load(configPath)
			if err != nil {
				return errors.Wrap(err, "loading config")
			}

			return run(cmd.Context(), runOptions{
				osmPath:     osmPath,
				dumpGeoJSON: dumpGeoJSON,
				metric:      tuning.Metric(),
				logger:      logger,
				stdin:       os.Stdin,
				stdout:      os.Stdout,
			})
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write structured diagnostic logs to this file")
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML file overriding the tuning defaults")
	cmd.Flags().StringVar(&osmPath, "osm", "", "read topics from an OpenStreetMap PBF export instead of stdin")
	cmd.Flags().StringVar(&dumpGeoJSON, "dump-geojson", "", "diagnostic only: dump the point set to this GeoJSON file")

	return cmd
}

type runOptions struct {
	osmPath     string
	dumpGeoJSON string
	metric      nearby_search.Metric
	logger      zerolog.Logger
	stdin       *os.File
	stdout      *os.File
}

func run(ctx context.Context, opts runOptions) error {
	var points []nearby_search.Point
	var queries []nearby_search.Query

	if opts.osmPath != "" {
		osmPoints, err := ingest.LoadPoints(opts.osmPath, ingest.Center{}, opts.logger)
		if err != nil {
			return errors.Wrapf(err, "loading OSM extract %q", opts.osmPath)
		}
		points = osmPoints

		qs, err := parseQueryLinesOnly(opts.stdin)
		if err != nil {
			return err
		}
		queries = qs
	} else {
		parsed, err := inputformat.Parse(opts.stdin)
		if err != nil {
			return err
		}
		points = parsed.Points
		queries = parsed.Queries
	}

	dispatcher := nearby_search.NewDispatcher(nearby_search.NewPointStore(points), opts.metric, opts.logger)

	if opts.dumpGeoJSON != "" {
		if err := dumpDiagnostics(opts.dumpGeoJSON, points, dispatcher.FullRoot()); err != nil {
			return errors.Wrap(err, "writing geojson dump")
		}
	}

	results, err := dispatcher.Dispatch(ctx, queries)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(opts.stdout)
	defer w.Flush()
	for _, r := range results {
		line := make([]string, len(r.IDs))
		for i, id := range r.IDs {
			line[i] = strconv.Itoa(id)
		}
		fmt.Fprintln(w, strings.Join(line, " "))
	}
	return nil
}

// parseQueryLinesOnly reads the query-lines-only stdin format used in
// --osm mode: a single integer N, followed by N query lines.
func parseQueryLinesOnly(r *os.File) ([]nearby_search.Query, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, errors.Wrap(nearby_search.ErrMalformedInput, "missing query count line")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n < 0 {
		return nil, errors.Wrap(nearby_search.ErrMalformedInput, "query count must be a non-negative integer")
	}

	queries := make([]nearby_search.Query, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, errors.Wrapf(nearby_search.ErrMalformedInput, "expected query line %d/%d", i+1, n)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 {
			return nil, errors.Wrapf(nearby_search.ErrMalformedInput, "query line wants 4 fields, got %d", len(fields))
		}
		var kind nearby_search.QueryKind
		switch fields[0] {
		case "t":
			kind = nearby_search.QueryTopic
		case "q":
			kind = nearby_search.QueryQuestion
		default:
			return nil, errors.Wrapf(nearby_search.ErrUnknownQueryKind, "kind %q", fields[0])
		}
		k, err := strconv.Atoi(fields[1])
		if err != nil || k < 1 {
			return nil, errors.Wrap(nearby_search.ErrMalformedInput, "k must be a positive integer")
		}
		x, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, errors.Wrap(nearby_search.ErrMalformedInput, "query x must be a float")
		}
		y, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, errors.Wrap(nearby_search.ErrMalformedInput, "query y must be a float")
		}
		queries = append(queries, nearby_search.Query{Kind: kind, K: k, X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading queries")
	}
	return queries, nil
}

func dumpDiagnostics(path string, points []nearby_search.Point, root *nearby_search.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return diagnostics.DumpGeoJSON(f, points, root)
}

func newLogger(path string) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return zerolog.Logger{}, nil, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }, nil
}
