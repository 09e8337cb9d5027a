package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/nkatturi/NotesAPI/internal/config"
	"github.com/nkatturi/NotesAPI/internal/data/redisStore"
	"github.com/nkatturi/NotesAPI/internal/data/store"
	"github.com/nkatturi/NotesAPI/internal/domain/jobModel"
	"github.com/redis/go-redis/v9"
)

func TestRedisJobStore_Lifecycle(t *testing.T) {
	// 1. Start miniredis
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	internalStore := redisStore.NewTestStore(client)
	jobStore := store.TestJobStore(internalStore)

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
	jobID := "job_abc_123"

	testJob := jobModel.Job{
		Id:      jobID,
		Status:  jobModel.JobStatusRunning,
		JobType: jobModel.JobTypeProcess,
		JobPayload: jobModel.JobPayload{
			Subject:        "physics",
			UploadFileName: "week1.pdf",
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		err := jobStore.SaveJob(ctx, testJob)
		if err != nil {
			t.Fatalf("SaveJob failed: %v", err)
		}

		retrievedJob, found := jobStore.GetJob(ctx, jobID)
		if !found {
			t.Fatal("Job was saved but not found in Redis")
		}

		if retrievedJob.JobPayload.Subject != testJob.JobPayload.Subject {
			t.Errorf("Data mismatch! Got %s, want %s",
				retrievedJob.JobPayload.Subject, testJob.JobPayload.Subject)
		}
		if retrievedJob.JobType != jobModel.JobTypeProcess {
			t.Errorf("JobType mismatch! Got %s", retrievedJob.JobType)
		}
	})

	t.Run("Get Non-Existent Job", func(t *testing.T) {
		if _, found := jobStore.GetJob(ctx, "no-such-job"); found {
			t.Error("found a job that was never saved")
		}
	})

	t.Run("Delete Job", func(t *testing.T) {
		jobStore.DeleteJob(ctx, jobID)
		if _, found := jobStore.GetJob(ctx, jobID); found {
			t.Error("job still present after delete")
		}
	})
}

func TestInMemoryJobStore_Lifecycle(t *testing.T) {
	jobStore := store.InitInMemoryJobStore()
	ctx := context.Background()

	job := jobModel.Job{Id: "mem-1", Status: jobModel.JobStatusQueued}
	if err := jobStore.SaveJob(ctx, job); err != nil {
		t.Fatalf("SaveJob failed: %v", err)
	}

	got, found := jobStore.GetJob(ctx, "mem-1")
	if !found || got.Status != jobModel.JobStatusQueued {
		t.Errorf("roundtrip failed: %+v found=%v", got, found)
	}

	jobStore.DeleteJob(ctx, "mem-1")
	if _, found := jobStore.GetJob(ctx, "mem-1"); found {
		t.Error("job still present after delete")
	}
}
