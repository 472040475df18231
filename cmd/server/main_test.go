package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/services"
)

func TestServe_InFlightRequestFinishesDuringShutdown(t *testing.T) {
	repo := repository.NewTaskRepository(repository.NewFileKVStore(t.TempDir()), constants.DefaultStorageKey)
	tracker := services.NewTracker(services.NewTaskStore(repo, nil))

	entered := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(entered)
			<-release
			err := tracker.Do(r.Context(), func(s *services.TaskStore) error {
				_, err := s.Add(services.TaskDraft{Title: "Late arrival"})
				return err
			})
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusCreated)
		}),
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serveDone := make(chan error, 1)
	go func() { serveDone <- serve(ctx, ln, srv, tracker) }()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Post("http://"+ln.Addr().String()+"/", "application/json", nil)
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()

	<-entered
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case code := <-status:
		assert.Equal(t, http.StatusCreated, code)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not finish while the server was shutting down")
	}

	select {
	case err := <-serveDone:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after shutdown")
	}

	tasks, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Late arrival", tasks[0].Title)

	// the tracker is stopped once serve returns
	doCtx, doCancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer doCancel()
	err = tracker.Do(doCtx, func(*services.TaskStore) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
