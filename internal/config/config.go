// Package config parses the line-oriented taskset description format
// (spec §6.2) into a validated domain.TaskSet.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rtalgs/rtalgs/internal/domain"
	"github.com/rtalgs/rtalgs/internal/lcm"
)

// Load reads and validates the taskset file at path, defaulting MaxTime
// to the hyperperiod when the file does not set one. A user-supplied
// max_time below the hyperperiod is logged as a warning, not returned
// as an error (spec §7(vi)).
func Load(path string) (*domain.TaskSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTaskSetIO, path, err)
	}
	defer f.Close()
	return parse(f, path)
}

func parse(r io.Reader, path string) (*domain.TaskSet, error) {
	ts := &domain.TaskSet{}
	var declaredCount int
	var sawMaxTime bool
	nextSysID := byte('a')

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, ";") || strings.HasPrefix(text, "*") {
			continue
		}

		keyword, rest, _ := strings.Cut(text, " ")
		rest = strings.TrimSpace(rest)
		switch strings.ToLower(keyword) {
		case "title":
			ts.Title = rest

		case "tasks":
			n, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: tasks value %q is not an integer", domain.ErrOutOfRangeValue, path, line, rest)
			}
			if n < 1 || n > domain.MaxTasks {
				return nil, fmt.Errorf("%w: %s:%d: tasks count %d outside 1..%d", domain.ErrTooManyTasks, path, line, n, domain.MaxTasks)
			}
			declaredCount = n

		case "maxtime":
			t, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %s:%d: maxtime value %q is not an integer", domain.ErrOutOfRangeValue, path, line, rest)
			}
			if t < 1 {
				return nil, fmt.Errorf("%w: %s:%d: maxtime must be positive", domain.ErrOutOfRangeValue, path, line)
			}
			ts.MaxTime = t
			ts.MaxTimeWasExplicit = true
			sawMaxTime = true

		case "task":
			task, err := parseTask(rest, path, line)
			if err != nil {
				return nil, err
			}
			task.SysID = nextSysID
			nextSysID++
			// Reverse-declaration-order storage: task 1 ends up last
			// inserted first, so it prints at the top (spec §6.2).
			ts.Tasks = append([]*domain.Task{task}, ts.Tasks...)

		case "end":
			goto done

		default:
			return nil, fmt.Errorf("%w: %s:%d: %q", domain.ErrUnknownKeyword, path, line, keyword)
		}
	}
done:
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrTaskSetIO, path, err)
	}

	if len(ts.Tasks) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoTasks, path)
	}
	if declaredCount != 0 && declaredCount != len(ts.Tasks) {
		return nil, fmt.Errorf("%w: %s: declared %d tasks, found %d", domain.ErrMissingField, path, declaredCount, len(ts.Tasks))
	}

	hyperperiod := lcm.Of(ts.Periods())
	if !sawMaxTime {
		ts.MaxTime = hyperperiod
	} else if ts.MaxTime < hyperperiod {
		log.Printf("warning: %s: max_time %d is below the hyperperiod %d; proceeding with the supplied value", path, ts.MaxTime, hyperperiod)
	}

	ts.Idle = domain.NewIdleTask()
	return ts, nil
}

func parseTask(rest, path string, line int) (*domain.Task, error) {
	fields := strings.Split(rest, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: %s:%d: task needs name,criticality,period,cpu_time", domain.ErrMissingField, path, line)
	}
	name, critRaw, periodRaw, cpuRaw := fields[0], fields[1], fields[2], fields[3]
	if name == "" {
		return nil, fmt.Errorf("%w: %s:%d: task name empty", domain.ErrMissingField, path, line)
	}

	var crit domain.Criticality
	switch strings.ToUpper(critRaw) {
	case "HIGH":
		crit = domain.High
	case "LOW":
		crit = domain.Low
	default:
		return nil, fmt.Errorf("%w: %s:%d: criticality must be HIGH or LOW, got %q", domain.ErrOutOfRangeValue, path, line, critRaw)
	}

	period, err := strconv.Atoi(periodRaw)
	if err != nil || period < 1 {
		return nil, fmt.Errorf("%w: %s:%d: period must be a positive integer, got %q", domain.ErrOutOfRangeValue, path, line, periodRaw)
	}
	cpuTime, err := strconv.Atoi(cpuRaw)
	if err != nil || cpuTime < 1 || cpuTime > period {
		return nil, fmt.Errorf("%w: %s:%d: cpu_time must satisfy 1<=cpu_time<=period, got %q", domain.ErrOutOfRangeValue, path, line, cpuRaw)
	}

	return &domain.Task{
		Name:        name,
		Criticality: crit,
		Period:      period,
		CPUTime:     cpuTime,
		State:       domain.Idle,
	}, nil
}
