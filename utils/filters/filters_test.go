package filters_test

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"survey-booking/utils/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every navigation the state issues.
type recorder struct {
	mu      sync.Mutex
	queries []string
}

func (r *recorder) navigate(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, query)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func (r *recorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		return ""
	}
	return r.queries[len(r.queries)-1]
}

func TestState_Update_ResetsPage(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("tab=pending&page=4", rec.navigate)
	require.NoError(t, err)

	state.Update("search", "khan", 0)

	assert.Equal(t, "1", state.Get("page"), "changing a filter must reset pagination")
	assert.Equal(t, "khan", state.Get("search"))
	assert.Equal(t, 1, rec.count())
}

func TestState_Update_PageDoesNotResetItself(t *testing.T) {
	state, err := filters.New("tab=pending&page=1", nil)
	require.NoError(t, err)

	state.Update("page", "3", 0)
	assert.Equal(t, "3", state.Get("page"))
}

func TestState_Update_DebounceCollapsesToLastValue(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("", rec.navigate)
	require.NoError(t, err)

	state.Update("search", "k", 40*time.Millisecond)
	state.Update("search", "kh", 40*time.Millisecond)
	state.Update("search", "khan", 40*time.Millisecond)

	assert.Equal(t, "", state.Get("search"), "value must not apply before the window closes")

	require.Eventually(t, func() bool {
		return rec.count() > 0
	}, time.Second, 5*time.Millisecond)

	// Let any stray timers fire before counting.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "rapid updates inside the window must navigate once")
	assert.Equal(t, "khan", state.Get("search"))

	values, err := url.ParseQuery(rec.last())
	require.NoError(t, err)
	assert.Equal(t, "khan", values.Get("search"))
	assert.Equal(t, "1", values.Get("page"))
}

func TestState_Update_ImmediateSupersedesPendingDebounce(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("", rec.navigate)
	require.NoError(t, err)

	state.Update("search", "draft", 40*time.Millisecond)
	state.Update("search", "final", 0)

	assert.Equal(t, "final", state.Get("search"))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, rec.count(), "the cancelled debounce must not navigate")
	assert.Equal(t, "final", state.Get("search"))
}

func TestState_Update_EmptyValueRemovesKey(t *testing.T) {
	state, err := filters.New("search=khan&page=2", nil)
	require.NoError(t, err)

	state.Update("search", "", 0)
	assert.Equal(t, "", state.Get("search"))
	assert.NotContains(t, state.Query(), "search=")
}

func TestState_Toggle(t *testing.T) {
	state, err := filters.New("", nil)
	require.NoError(t, err)

	state.Toggle("surveyor", "7")
	assert.Equal(t, "7", state.Get("surveyor"))

	state.Toggle("surveyor", "7")
	assert.Equal(t, "", state.Get("surveyor"))
}

func TestState_UpdateBatch_SingleNavigation(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("page=5", rec.navigate)
	require.NoError(t, err)

	state.UpdateBatch(map[string]string{
		"month": "2",
		"year":  "2026",
	})

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "2", state.Get("month"))
	assert.Equal(t, "2026", state.Get("year"))
	assert.Equal(t, "1", state.Get("page"))
}

func TestState_ClearAll_CancelsPendingDebounce(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("tab=pending", rec.navigate)
	require.NoError(t, err)

	state.Update("search", "khan", 40*time.Millisecond)
	state.ClearAll("tab")

	// Wait past the debounce window; the cancelled timer must not fire.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "", state.Get("search"), "cancelled debounce must not re-apply its value")
	assert.Equal(t, 1, rec.count(), "only the clear itself navigates")
	assert.Equal(t, "pending", state.Get("tab"))
}

func TestState_ClearAll_KeepsExceptions(t *testing.T) {
	rec := &recorder{}
	state, err := filters.New("tab=completed&search=khan&page=3", rec.navigate)
	require.NoError(t, err)

	state.ClearAll("tab")

	assert.Equal(t, "completed", state.Get("tab"))
	assert.Equal(t, "", state.Get("search"))
	assert.Equal(t, "", state.Get("page"))
	assert.Equal(t, 1, rec.count())
}
