package batch

import (
	"bytes"
	"errors"
	"testing"
)

func TestRunOrdersResultsByIndex(t *testing.T) {
	d := NewDispatcher(4)

	jobs := make([]Job, 10)
	for i := range jobs {
		i := i
		jobs[i] = Job{
			Index: i,
			Path:  "file",
			Input: []byte{byte(i)},
			Run: func(in []byte) ([]byte, error) {
				return append([]byte{}, in...), nil
			},
		}
	}

	results, err := d.Run(jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("results[%d].Index = %d, want %d", i, r.Index, i)
		}
		if !bytes.Equal(r.Output, jobs[i].Input) {
			t.Fatalf("results[%d].Output = %v, want %v", i, r.Output, jobs[i].Input)
		}
	}
}

func TestRunCollectsPerJobErrors(t *testing.T) {
	d := NewDispatcher(2)
	wantErr := errors.New("boom")

	jobs := []Job{
		{Index: 0, Run: func([]byte) ([]byte, error) { return []byte("ok"), nil }},
		{Index: 1, Run: func([]byte) ([]byte, error) { return nil, wantErr }},
	}

	results, err := d.Run(jobs)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("results[0].Err = %v, want nil", results[0].Err)
	}
	if results[1].Err != wantErr {
		t.Fatalf("results[1].Err = %v, want %v", results[1].Err, wantErr)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{Index: 0, InBytes: 10, Err: nil},
		{Index: 1, InBytes: 20, Err: errors.New("bad")},
		{Index: 2, InBytes: 30, Err: nil},
	}
	s := Summarize(results)
	if s.Succeeded != 2 || s.Failed != 1 || s.InputBytes != 40 {
		t.Fatalf("Summarize = %+v, want {Succeeded:2 Failed:1 InputBytes:40}", s)
	}
}

func TestStartTwiceFails(t *testing.T) {
	d := NewDispatcher(1)
	if err := d.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()
	if err := d.Start(); err == nil {
		t.Fatalf("second Start() = nil, want error")
	}
}
