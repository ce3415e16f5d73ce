package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ttpr0/go-journeys/batched/grid"
	"github.com/ttpr0/go-journeys/geo"
	"github.com/ttpr0/go-journeys/routing"
	"github.com/ttpr0/go-journeys/structs"
	. "github.com/ttpr0/go-journeys/util"
	"golang.org/x/exp/slog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// Runs the command line with args and returns the exit code.
func run(args []string, out io.Writer) int {
	flags := flag.NewFlagSet("go-journeys", flag.ContinueOnError)
	config_file := flags.String("config", "./config.yaml", "config file")
	from := flags.String("from", "", "start station id or lon,lat")
	to := flags.String("to", "", "destination station id or lon,lat")
	date_str := flags.String("date", "", "travel date (yyyy-mm-dd), today if empty")
	time_str := flags.String("time", "", "query time (hh:mm), now if empty")
	arrive_by := flags.Bool("arrive-by", false, "treat the time as latest arrival")
	grid_dest := flags.String("grid", "", "compute travel times from all grid cells to this station")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *grid_dest == "" && (*from == "" || *to == "") {
		flags.Usage()
		return 2
	}

	config, err := ReadConfig(*config_file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	slog.SetDefault(slog.New(NewLogHandler(out, &slog.HandlerOptions{Level: config.Log.SlogLevel()})))

	date, clock, err := _ParseDateTime(*date_str, *time_str, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	manager, err := NewPlannerManager(config)
	if err != nil {
		slog.Error("failed to load network", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *grid_dest != "" {
		results, err := manager.Grid(ctx, *grid_dest, date, clock)
		if err != nil {
			return _Fail(err)
		}
		_PrintCells(out, results)
		return 0
	}
	journeys, err := _Plan(ctx, manager, *from, *to, date, clock, *arrive_by)
	if err != nil {
		return _Fail(err)
	}
	if journeys.Length() == 0 {
		fmt.Fprintln(out, "no journey found")
		return 0
	}
	for _, journey := range journeys {
		fmt.Fprint(out, FormatJourney(manager.Graph(), journey))
	}
	return 0
}

// Endpoints containing a comma are locations, everything else is a station id.
func _Plan(ctx context.Context, manager *PlannerManager, from, to string, date structs.Date, clock structs.Clock, arrive_by bool) (List[routing.Journey], error) {
	if !strings.Contains(from, ",") && !strings.Contains(to, ",") {
		return manager.Plan(ctx, routing.JourneyRequest{
			Start:       from,
			Destination: to,
			Date:        date,
			Time:        clock,
			ArriveBy:    arrive_by,
		})
	}
	from_coord, err := _ResolveCoord(manager, from)
	if err != nil {
		return nil, err
	}
	to_coord, err := _ResolveCoord(manager, to)
	if err != nil {
		return nil, err
	}
	return manager.PlanLocations(ctx, from_coord, to_coord, date, clock, arrive_by)
}

func _ParseDateTime(date_str, time_str string, now time.Time) (structs.Date, structs.Clock, error) {
	date := structs.DateFromTime(now)
	clock := structs.NewClock(int32(now.Hour()), int32(now.Minute()))
	var err error
	if date_str != "" {
		if date, err = structs.ParseDate(date_str); err != nil {
			return date, clock, err
		}
	}
	if time_str != "" {
		if clock, err = structs.ParseClock(time_str); err != nil {
			return date, clock, err
		}
	}
	return date, clock, nil
}

func _PrintCells(out io.Writer, results List[grid.CellResult]) {
	for _, cell := range results {
		cost := "-"
		if cell.Cost != grid.NO_ROUTE {
			cost = fmt.Sprint(cell.Cost)
		}
		fmt.Fprintf(out, "%v\t%v,%v\t%v\t%v\n", cell.Key, cell.Row, cell.Col, cell.Stations, cost)
	}
}

func _Fail(err error) int {
	if errors.Is(err, context.Canceled) {
		slog.Warn("interrupted")
		return 130
	}
	slog.Error("query failed", "error", err)
	return 1
}

// Station ids resolve to the station position.
func _ResolveCoord(manager *PlannerManager, s string) (geo.Coord, error) {
	if strings.Contains(s, ",") {
		return ParseCoord(s)
	}
	g := manager.Graph()
	node, err := g.GetStationNode(s)
	if err != nil {
		return geo.Coord{}, err
	}
	return g.GetStation(g.NodeStation(node)).Loc, nil
}
