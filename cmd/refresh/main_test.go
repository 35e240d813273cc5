package main

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petmatch-backend/internal/recommendations"
)

type recordingRefresher struct {
	mu     sync.Mutex
	users  []string
	limits []int
	fail   map[string]bool
}

func (r *recordingRefresher) Refresh(ctx context.Context, userID string, limit int) (recommendations.List, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	r.limits = append(r.limits, limit)
	if r.fail[userID] {
		return recommendations.List{}, errors.New("boom")
	}
	return recommendations.List{UserID: userID}, nil
}

type staticUsers struct {
	ids []string
	err error
}

func (s staticUsers) ListIDs(ctx context.Context) ([]string, error) {
	return s.ids, s.err
}

func TestRunRefreshesSingleUser(t *testing.T) {
	refresher := &recordingRefresher{}
	err := run(context.Background(), refresher, staticUsers{ids: []string{"a", "b"}}, options{userID: "guest:x", limit: 7, concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"guest:x"}, refresher.users)
	assert.Equal(t, []int{7}, refresher.limits)
}

func TestRunRefreshesAllUsers(t *testing.T) {
	refresher := &recordingRefresher{}
	err := run(context.Background(), refresher, staticUsers{ids: []string{"c", "a", "b"}}, options{limit: 20, concurrency: 2})
	require.NoError(t, err)
	sort.Strings(refresher.users)
	assert.Equal(t, []string{"a", "b", "c"}, refresher.users)
}

func TestRunReportsFailuresAfterFinishing(t *testing.T) {
	refresher := &recordingRefresher{fail: map[string]bool{"b": true}}
	err := run(context.Background(), refresher, staticUsers{ids: []string{"a", "b", "c"}}, options{limit: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Len(t, refresher.users, 3)
}

func TestRunSurfacesListError(t *testing.T) {
	err := run(context.Background(), &recordingRefresher{}, staticUsers{err: errors.New("db down")}, options{limit: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users")
}
