package api

import (
	"sync"
	"time"

	"github.com/chenBenjamin97/football-analyzer/pkg/pipeline"
	"github.com/google/uuid"
)

const (
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

//Job is the state of one background tagging of an uploaded video
type Job struct {
	ID         string          `json:"id"`
	Video      string          `json:"video"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Possession map[int]float64 `json:"possession,omitempty"`
	TeamModel  string          `json:"team_model,omitempty"`
	Started    time.Time       `json:"started"`
	Finished   *time.Time      `json:"finished,omitempty"`
}

//jobRegistry keeps every job started since the server is up
type jobRegistry struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

func newJobRegistry() *jobRegistry {
	return &jobRegistry{jobs: make(map[string]*Job)}
}

func (r *jobRegistry) start(videoName string) Job {
	job := &Job{ID: uuid.NewString(), Video: videoName, Status: JobRunning, Started: time.Now()}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[job.ID] = job

	return *job
}

func (r *jobRegistry) finish(id string, result *pipeline.Result, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return
	}

	now := time.Now()
	job.Finished = &now
	if err != nil {
		job.Status = JobFailed
		job.Error = err.Error()
		return
	}

	job.Status = JobDone
	job.Possession = shares(result)
	if result != nil {
		job.TeamModel = result.TeamModel
	}
}

//get returns a copy of the job, safe to serialize while the job keeps running
func (r *jobRegistry) get(id string) (Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

//shares keeps job results small, without the whole track table
func shares(result *pipeline.Result) map[int]float64 {
	if result == nil {
		return nil
	}
	return result.Shares()
}
