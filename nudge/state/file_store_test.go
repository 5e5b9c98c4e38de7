package state

import (
	"path"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, fs afero.Fs) *FileStore {
	t.Helper()
	s, err := NewFileStore(fs, "/state", "com.example.App")
	require.NoError(t, err)
	return s
}

func TestNewFileStore(t *testing.T) {
	_, err := NewFileStore(afero.NewMemMapFs(), "/state", "")
	require.Error(t, err)

	_, err = NewFileStore(afero.NewMemMapFs(), "", "com.example.app")
	require.Error(t, err)

	s, err := NewFileStore(afero.NewMemMapFs(), "/state", "com.example/../app id")
	require.NoError(t, err)
	assert.Equal(t, "/state/com.example_.._app_id/state.json", s.Location())
}

func TestFileStore_GetFirstRun(t *testing.T) {
	s := newTestStore(t, afero.NewMemMapFs())

	st, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestFileStore_fieldsAreIndependent(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*60*60))

	require.NoError(t, s.SetLastAlertDate(when))
	require.NoError(t, s.SetSkippedVersion("3.0.0"))
	require.NoError(t, s.SetPendingNextLaunchCheck(true))

	st, err := s.Get()
	require.NoError(t, err)
	require.NotNil(t, st.LastAlertDate)
	assert.True(t, when.Equal(*st.LastAlertDate))
	assert.Equal(t, time.UTC, st.LastAlertDate.Location())
	assert.Equal(t, "3.0.0", st.SkippedVersion)
	assert.True(t, st.PendingNextLaunchCheck)

	require.NoError(t, s.SetPendingNextLaunchCheck(false))

	st, err = s.Get()
	require.NoError(t, err)
	assert.False(t, st.PendingNextLaunchCheck)
	assert.Equal(t, "3.0.0", st.SkippedVersion, "clearing one field must not disturb the others")
	require.NotNil(t, st.LastAlertDate)

	// a second store for the same app observes the persisted values (durable across instances)
	other := newTestStore(t, fs)
	st2, err := other.Get()
	require.NoError(t, err)
	assert.Equal(t, st.SkippedVersion, st2.SkippedVersion)
}

func TestFileStore_keyedByApp(t *testing.T) {
	fs := afero.NewMemMapFs()
	a, err := NewFileStore(fs, "/state", "com.example.a")
	require.NoError(t, err)
	b, err := NewFileStore(fs, "/state", "com.example.b")
	require.NoError(t, err)

	require.NoError(t, a.SetSkippedVersion("1.0"))

	st, err := b.Get()
	require.NoError(t, err)
	assert.Empty(t, st.SkippedVersion)
}

func TestFileStore_Reset(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	require.NoError(t, s.Reset(), "resetting with no state is not an error")

	require.NoError(t, s.SetSkippedVersion("2.0"))
	require.NoError(t, s.Reset())

	st, err := s.Get()
	require.NoError(t, err)
	assert.Equal(t, State{}, st)
}

func TestFileStore_corruptState(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	require.NoError(t, afero.WriteFile(fs, s.Location(), []byte("{not json"), 0600))

	_, err := s.Get()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to parse state")

	require.NoError(t, s.SetPendingNextLaunchCheck(true), "a corrupt document is replaced on write")
	st, err := s.Get()
	require.NoError(t, err)
	assert.True(t, st.PendingNextLaunchCheck)
}

func TestFileStore_malformedDate(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	require.NoError(t, afero.WriteFile(fs, s.Location(), []byte(`{"lastAlertDate": "yesterday"}`), 0600))

	_, err := s.Get()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot convert last alert date")
}

func TestFileStore_writeError(t *testing.T) {
	s := newTestStore(t, afero.NewReadOnlyFs(afero.NewMemMapFs()))

	err := s.SetSkippedVersion("1.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write state")
}

func TestFileStore_osFilesystemUsesLock(t *testing.T) {
	root := t.TempDir()
	s, err := NewFileStore(afero.NewOsFs(), root, "com.example.app")
	require.NoError(t, err)

	require.NoError(t, s.SetLastAlertDate(time.Now()))
	st, err := s.Get()
	require.NoError(t, err)
	require.NotNil(t, st.LastAlertDate)
	assert.WithinDuration(t, time.Now(), *st.LastAlertDate, 2*time.Second)

	exists, err := afero.Exists(afero.NewOsFs(), path.Join(root, "com.example.app", lockFileName))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestState_String(t *testing.T) {
	last := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, `State(lastAlert=never skipped="" pendingNextLaunch=false)`, State{}.String())
	assert.Equal(t, `State(lastAlert=2024-01-02T03:04:05Z skipped="1.2" pendingNextLaunch=true)`,
		State{LastAlertDate: &last, SkippedVersion: "1.2", PendingNextLaunchCheck: true}.String())
}

func TestFileStore_lastAlertDatePrecision(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newTestStore(t, fs)

	when := time.Date(2024, 3, 1, 12, 30, 0, 999_999_999, time.UTC)
	require.NoError(t, s.SetLastAlertDate(when))

	st, err := s.Get()
	require.NoError(t, err)
	require.NotNil(t, st.LastAlertDate)
	assert.True(t, when.Equal(*st.LastAlertDate), "expected %s, got %s", when, st.LastAlertDate)

	// documents written without fractional seconds still load
	require.NoError(t, afero.WriteFile(fs, s.Location(), []byte(`{"lastAlertDate": "2024-03-01T12:30:00Z"}`), 0600))
	st, err = s.Get()
	require.NoError(t, err)
	require.NotNil(t, st.LastAlertDate)
	assert.True(t, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC).Equal(*st.LastAlertDate))
}
