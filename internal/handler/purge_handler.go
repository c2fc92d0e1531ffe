package handler

import (
	"context"
	"net/http"
	"time"

	"vault-purge/internal/model"
)

type purgeRunner interface {
	Run(ctx context.Context) (model.PurgeResult, error)
	Status() model.PurgeStatus
}

type scheduleInfo interface {
	Schedule() string
	IsRunning() bool
	NextRun() *time.Time
}

type PurgeHandler struct {
	purge purgeRunner
	sched scheduleInfo
}

func NewPurgeHandler(purge purgeRunner, sched scheduleInfo) *PurgeHandler {
	return &PurgeHandler{purge: purge, sched: sched}
}

// Run triggers a purge pass immediately, outside the cron schedule.
func (h *PurgeHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.purge.Run(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}

func (h *PurgeHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.purge.Status()

	if h.sched != nil {
		status.Schedule = h.sched.Schedule()
		status.SchedulerRunning = h.sched.IsRunning()
		if next := h.sched.NextRun(); next != nil {
			status.NextRun = model.FormatTimestamp(*next)
		}
	}

	writeSuccess(w, http.StatusOK, status, nil)
}
