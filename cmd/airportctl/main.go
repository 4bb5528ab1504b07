// Command airportctl manages the airport reference table.
//
//	airportctl analyze <airports.csv>
//	airportctl inspect <file.csv>
//	airportctl import [-replace] <airports.csv>
//	airportctl quickstart
//	airportctl export [-o airports_export.csv]
//	airportctl count
//	airportctl clean
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jengzang/flightarcs-backend-go/internal/airports"
	"github.com/jengzang/flightarcs-backend-go/internal/config"
	"github.com/jengzang/flightarcs-backend-go/internal/database"
	"github.com/jengzang/flightarcs-backend-go/internal/logging"
	"github.com/jengzang/flightarcs-backend-go/internal/repository"
	"github.com/jengzang/flightarcs-backend-go/internal/service"
)

var errUsage = errors.New("usage")

func main() {
	logging.Setup("warn", "text", "")

	dbPath := ""
	if cfg, err := config.Load(); err == nil {
		dbPath = cfg.Database.Path
	}

	if err := run(os.Args[1:], dbPath, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: airportctl [-db path] <command>
Commands:
  analyze <file.csv>          Summarize an OurAirports file
  inspect <file.csv>          Show the header and first rows of a CSV file
  import [-replace] <file>    Import airports from an OurAirports file
  quickstart                  Replace the table with the built-in airports
  export [-o file]            Export airports to CSV
  count                       Count stored airports
  clean                       Remove airports with unusable data`)
}

func run(args []string, defaultDB string, out io.Writer) error {
	global := flag.NewFlagSet("airportctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	dbPath := global.String("db", defaultDB, "sqlite database path")
	if err := global.Parse(args); err != nil || global.NArg() == 0 {
		return errUsage
	}

	cmd, rest := global.Arg(0), global.Args()[1:]

	// Commands that only read a file
	switch cmd {
	case "analyze":
		return withFile(rest, func(f io.Reader) error { return analyze(f, out) })
	case "inspect":
		return withFile(rest, func(f io.Reader) error { return inspect(f, out) })
	}

	if *dbPath == "" {
		return fmt.Errorf("no database path, pass -db or set FLIGHTARCS_DATABASE_PATH")
	}
	db, err := database.OpenMigrated(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	svc := service.NewAirportService(repository.NewAirportRepository(db))

	switch cmd {
	case "import":
		return importCmd(rest, svc, out)
	case "quickstart":
		n, err := svc.Import(airports.Seed, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Added %d major airports\n", n)
		return nil
	case "export":
		return exportCmd(rest, svc, out)
	case "count":
		n, err := svc.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Total airports in database: %s\n", humanize.Comma(n))
		return nil
	case "clean":
		n, err := svc.Clean()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d airports with invalid data\n", n)
		return nil
	}
	return errUsage
}

func withFile(args []string, fn func(io.Reader) error) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()
	return fn(f)
}

func analyze(r io.Reader, out io.Writer) error {
	a, err := airports.Analyze(r)
	if err != nil {
		return err
	}
	if a.Rows == 0 {
		fmt.Fprintln(out, "No rows")
		return nil
	}

	pct := func(n int) float64 { return float64(n) / float64(a.Rows) * 100 }
	fmt.Fprintf(out, "Total rows: %s\n", humanize.Comma(int64(a.Rows)))
	fmt.Fprintf(out, "With IATA code: %s (%.1f%%)\n", humanize.Comma(int64(a.WithIATA)), pct(a.WithIATA))
	fmt.Fprintf(out, "With scheduled service: %s\n", humanize.Comma(int64(a.WithScheduled)))

	fmt.Fprintln(out, "\nAirport types:")
	for _, c := range airports.TopCounts(a.Types, 0) {
		fmt.Fprintf(out, "  %s: %s (%.1f%%)\n", c.Key, humanize.Comma(int64(c.Count)), pct(c.Count))
	}
	fmt.Fprintln(out, "\nTop 15 countries:")
	for _, c := range airports.TopCounts(a.Countries, 15) {
		fmt.Fprintf(out, "  %s: %s\n", c.Key, humanize.Comma(int64(c.Count)))
	}
	return nil
}

func inspect(r io.Reader, out io.Writer) error {
	header, rows, err := airports.Inspect(r, 3)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Headers: %s\n", strings.Join(header, ", "))
	for i, row := range rows {
		fmt.Fprintf(out, "Row %d: %s\n", i+1, strings.Join(row, ", "))
	}
	return nil
}

func importCmd(args []string, svc *service.AirportService, out io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	replace := fs.Bool("replace", false, "delete existing airports first")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return withFile(fs.Args(), func(f io.Reader) error {
		result, err := airports.ParseOurAirports(f)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Found %s suitable airports in %s rows\n",
			humanize.Comma(int64(len(result.Airports))), humanize.Comma(int64(result.Rows)))

		n, err := svc.Import(result.Airports, *replace)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %s airports\n", humanize.Comma(int64(n)))
		return nil
	})
}

func exportCmd(args []string, svc *service.AirportService, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("o", "airports_export.csv", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	list, err := svc.All()
	if err != nil {
		return err
	}

	w := out
	if *path != "-" {
		f, err := os.Create(*path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *path, err)
		}
		defer f.Close()
		w = f
	}
	if err := airports.WriteCSV(w, list); err != nil {
		return err
	}
	if *path != "-" {
		fmt.Fprintf(out, "Exported %d airports to %s\n", len(list), *path)
	}
	return nil
}
