// Package export reads and writes the flat interchange formats surrounding
// a schedule: job lists as CSV and finished schedules as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jbaptistec/shiftplan/core/model"
)

// AssignmentRecord is the flat per-assignment row consumed by dashboards
// and downstream systems.
type AssignmentRecord struct {
	MachineID        string `json:"machine_id"`
	JobID            string `json:"job_id"`
	ProductType      string `json:"product_type"`
	Start            string `json:"start_time"`
	End              string `json:"end_time"`
	ProcessingTime   int    `json:"processing_time"`
	SetupTimeBefore  int    `json:"setup_time_before"`
	Priority         string `json:"priority"`
	IsLate           bool   `json:"is_late"`
	TardinessMinutes int    `json:"tardiness_minutes"`
}

// Records flattens the schedule machine by machine in first-seen order.
func Records(s *model.Schedule) []AssignmentRecord {
	var recs []AssignmentRecord
	for _, a := range s.AllAssignments() {
		recs = append(recs, AssignmentRecord{
			MachineID:        a.MachineID,
			JobID:            a.Job.ID,
			ProductType:      a.Job.ProductType,
			Start:            a.Start.String(),
			End:              a.End.String(),
			ProcessingTime:   a.Job.ProcessingTime,
			SetupTimeBefore:  a.SetupTimeBefore,
			Priority:         string(a.Job.Priority),
			IsLate:           a.IsLate(),
			TardinessMinutes: a.Tardiness(),
		})
	}
	return recs
}

// WriteScheduleJSON writes the schedule's assignment records to w as JSON.
func WriteScheduleJSON(w io.Writer, s *model.Schedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(s))
}

// WriteScheduleCSV writes the schedule's assignment records to w as CSV.
func WriteScheduleCSV(w io.Writer, s *model.Schedule) error {
	cw := csv.NewWriter(w)
	header := []string{"machine_id", "job_id", "product_type", "start_time", "end_time",
		"processing_time", "setup_time_before", "priority", "is_late", "tardiness_minutes"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range Records(s) {
		rec := []string{
			r.MachineID,
			r.JobID,
			r.ProductType,
			r.Start,
			r.End,
			strconv.Itoa(r.ProcessingTime),
			strconv.Itoa(r.SetupTimeBefore),
			r.Priority,
			strconv.FormatBool(r.IsLate),
			strconv.Itoa(r.TardinessMinutes),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var jobsHeader = []string{"job_id", "product_type", "processing_time", "due_time", "priority", "machine_options"}

// WriteJobsCSV writes the job list to w. Machine options are comma-joined
// inside a single quoted field.
func WriteJobsCSV(w io.Writer, jobs []model.Job) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(jobsHeader); err != nil {
		return err
	}
	for _, j := range jobs {
		rec := []string{
			j.ID,
			j.ProductType,
			strconv.Itoa(j.ProcessingTime),
			j.DueTime.String(),
			string(j.Priority),
			strings.Join(j.MachineOptions, ","),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadJobsCSV parses a job list from r. Each row goes through the model
// constructor, so malformed rows fail here rather than during scheduling.
func ReadJobsCSV(r io.Reader) ([]model.Job, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty job file")
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}
	var jobs []model.Job
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != len(jobsHeader) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, len(jobsHeader), len(row))
		}
		processing, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: processing_time: %w", line, err)
		}
		due, err := model.ParseClock(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: due_time: %w", line, err)
		}
		var options []string
		for _, opt := range strings.Split(row[5], ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		job, err := model.NewJob(
			strings.TrimSpace(row[0]),
			strings.TrimSpace(row[1]),
			processing,
			due,
			model.Priority(strings.TrimSpace(row[4])),
			options,
		)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func checkHeader(row []string) error {
	if len(row) != len(jobsHeader) {
		return fmt.Errorf("unexpected header %v", row)
	}
	for i, col := range jobsHeader {
		if strings.TrimSpace(row[i]) != col {
			return fmt.Errorf("unexpected header column %q, want %q", row[i], col)
		}
	}
	return nil
}
