// Package mapio reads plain-text map and scenario fixtures into an
// instance.Problem. The grammar is two lines of
// whitespace-delimited integers and a bitmap, small and fixed enough that
// bufio/strconv are a better fit than a general parsing library (see
// DESIGN.md).
package mapio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elektrokombinacija/mapf-cbs/internal/gridmap"
	"github.com/elektrokombinacija/mapf-cbs/internal/instance"
)

// ReadMap parses the map file format: a "W H" header line, followed by W*H
// characters in {'0', '1'} (whitespace ignored), row-major, '1' meaning
// obstacle.
func ReadMap(r io.Reader) (*gridmap.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	w, h, err := readDimensions(sc)
	if err != nil {
		return nil, fmt.Errorf("mapio: map header: %w", err)
	}

	obstacle := make([]byte, 0, w*h)
	for sc.Scan() {
		line := sc.Text()
		for _, r := range line {
			switch r {
			case '0':
				obstacle = append(obstacle, 0)
			case '1':
				obstacle = append(obstacle, 1)
			default:
				if r == ' ' || r == '\t' || r == '\r' {
					continue
				}
				return nil, fmt.Errorf("mapio: unexpected map character %q", r)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mapio: reading map body: %w", err)
	}

	grid, err := gridmap.New(w, h, obstacle)
	if err != nil {
		return nil, err
	}
	return grid, nil
}

func readDimensions(sc *bufio.Scanner) (w, h int, err error) {
	if !sc.Scan() {
		return 0, 0, fmt.Errorf("missing header line")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"W H\", got %q", sc.Text())
	}
	w, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q: %w", fields[0], err)
	}
	h, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q: %w", fields[1], err)
	}
	return w, h, nil
}

// ReadScenario parses the scenario file format: a first integer N, then N
// lines of four integers "sx sy gx gy".
func ReadScenario(r io.Reader) (starts, goals []gridmap.Coord, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		return nil, nil, fmt.Errorf("mapio: scenario: missing agent count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, nil, fmt.Errorf("mapio: scenario: invalid agent count %q: %w", sc.Text(), err)
	}

	starts = make([]gridmap.Coord, 0, n)
	goals = make([]gridmap.Coord, 0, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, nil, fmt.Errorf("mapio: scenario: expected %d agent lines, got %d", n, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 {
			return nil, nil, fmt.Errorf("mapio: scenario: want \"sx sy gx gy\", got %q", sc.Text())
		}
		vals := make([]int, 4)
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, nil, fmt.Errorf("mapio: scenario: invalid integer %q: %w", f, err)
			}
			vals[j] = v
		}
		starts = append(starts, gridmap.Coord{X: vals[0], Y: vals[1]})
		goals = append(goals, gridmap.Coord{X: vals[2], Y: vals[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("mapio: reading scenario body: %w", err)
	}
	return starts, goals, nil
}

// ReadProblem combines a map and scenario reader into a validated
// instance.Problem.
func ReadProblem(mapR, scenR io.Reader) (*instance.Problem, error) {
	grid, err := ReadMap(mapR)
	if err != nil {
		return nil, err
	}
	starts, goals, err := ReadScenario(scenR)
	if err != nil {
		return nil, err
	}
	prob := &instance.Problem{Grid: grid, Starts: starts, Goals: goals}
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	return prob, nil
}
