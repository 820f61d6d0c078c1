package pool

// Job is a one-shot unit of work. A job is created by the caller of
// Execute, handed over to the pool, delivered to exactly one worker, run
// exactly once, and discarded. Jobs produce no return value; they act
// through side effects only.
type Job interface {
	// Run performs the work. It is called at most once, on a worker
	// goroutine, and must not be expected to run on the submitting
	// goroutine.
	Run()
}

// JobFunc is a function type that implements Job.
// Allows plain closures to be submitted without defining a struct.
type JobFunc func()

// Run implements Job for JobFunc.
func (f JobFunc) Run() {
	f()
}

// NamedJob wraps a Job with a human-readable label.
// The label shows up in panic logs and metrics.
type NamedJob struct {
	name string
	job  Job
}

// NewNamedJob creates a NamedJob wrapping job.
func NewNamedJob(name string, job Job) *NamedJob {
	return &NamedJob{
		name: name,
		job:  job,
	}
}

// Run implements Job.
func (j *NamedJob) Run() {
	j.job.Run()
}

// Name returns the job label.
func (j *NamedJob) Name() string {
	return j.name
}

const defaultJobName = "job"

// jobName returns the label to report for j in logs.
func jobName(j Job) string {
	if named, ok := j.(interface{ Name() string }); ok {
		return named.Name()
	}
	return defaultJobName
}
