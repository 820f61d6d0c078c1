package pool

import (
	"testing"
)

func TestJobFunc_Run(t *testing.T) {
	ran := false
	JobFunc(func() { ran = true }).Run()
	if !ran {
		t.Error("JobFunc.Run() did not call the function")
	}
}

func TestNamedJob(t *testing.T) {
	ran := false
	job := NewNamedJob("resize-avatar", JobFunc(func() { ran = true }))

	if got := job.Name(); got != "resize-avatar" {
		t.Errorf("Name() = %q, want %q", got, "resize-avatar")
	}

	job.Run()
	if !ran {
		t.Error("NamedJob.Run() did not delegate to the wrapped job")
	}
}

func TestJobName(t *testing.T) {
	named := NewNamedJob("indexer", JobFunc(func() {}))
	if got := jobName(named); got != "indexer" {
		t.Errorf("jobName(named) = %q, want %q", got, "indexer")
	}

	if got := jobName(JobFunc(func() {})); got != defaultJobName {
		t.Errorf("jobName(plain) = %q, want %q", got, defaultJobName)
	}
}
