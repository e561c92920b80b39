package provisioning

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script is a shared call recorder so tests can assert cross-collaborator
// ordering.
type script struct {
	calls []string
}

type fakeCreator struct {
	s *script
	// rejections is the number of initial attempts to reject.
	rejections int
	reason     string
	attempts   int
}

func (f *fakeCreator) CreateProject(_ context.Context, projectID string) error {
	f.s.calls = append(f.s.calls, "create:"+projectID)
	f.attempts++
	if f.attempts <= f.rejections {
		return errors.New(f.reason)
	}
	return nil
}

type fakeContextSetter struct {
	s   *script
	err error
}

func (f *fakeContextSetter) SetActiveProject(_ context.Context, projectID string) error {
	f.s.calls = append(f.s.calls, "context:"+projectID)
	return f.err
}

type fakeInstaller struct {
	s   *script
	err error
}

func (f *fakeInstaller) Install(_ context.Context, pkg string) error {
	f.s.calls = append(f.s.calls, "install:"+pkg)
	return f.err
}

type fakeEnabler struct {
	s   *script
	err error
}

func (f *fakeEnabler) Enable(_ context.Context) error {
	f.s.calls = append(f.s.calls, "enable")
	return f.err
}

type fakeStore struct {
	s       *script
	err     error
	written []string
}

func (f *fakeStore) Write(projectID string) error {
	f.s.calls = append(f.s.calls, "write:"+projectID)
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, projectID)
	return nil
}

// acceptPrompter accepts every proposal and records what it saw.
type acceptPrompter struct {
	proposed []string
}

func (p *acceptPrompter) Confirm(_ context.Context, proposed string) (string, error) {
	p.proposed = append(p.proposed, proposed)
	return proposed, nil
}

// overridePrompter replaces the proposal with a fixed value.
type overridePrompter struct {
	value string
}

func (p overridePrompter) Confirm(context.Context, string) (string, error) {
	return p.value, nil
}

func newProvisioner(s *script, prompter Prompter, creator *fakeCreator, setter *fakeContextSetter, installer *fakeInstaller, enabler *fakeEnabler, store *fakeStore) *Provisioner {
	return &Provisioner{
		Prefix:     "agentverse-guardian",
		Dependency: "google-cloud-billing",
		Creator:    creator,
		Context:    setter,
		Installer:  installer,
		Enabler:    enabler,
		Prompter:   prompter,
		Store:      store,
		Out:        &bytes.Buffer{},
	}
}

func TestRunSuccess(t *testing.T) {
	s := &script{}
	prompter := &acceptPrompter{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	p := newProvisioner(s, prompter, creator, setter, installer, enabler, store)
	projectID, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(projectID, "agentverse-guardian-"))
	assert.Len(t, projectID, 30)
	require.Equal(t, []string{projectID}, store.written)

	want := []string{
		"create:" + projectID,
		"context:" + projectID,
		"write:" + projectID,
		"install:google-cloud-billing",
		"enable",
	}
	assert.Equal(t, want, s.calls)
}

func TestRunRetriesOnRejection(t *testing.T) {
	s := &script{}
	prompter := &acceptPrompter{}
	creator := &fakeCreator{s: s, rejections: 2, reason: "ALREADY_EXISTS"}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	p := newProvisioner(s, prompter, creator, setter, installer, enabler, store)
	out := &bytes.Buffer{}
	p.Out = out

	projectID, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, creator.attempts)
	assert.Contains(t, out.String(), "ALREADY_EXISTS")

	// Each retry proposed a fresh candidate.
	require.Len(t, prompter.proposed, 3)
	assert.NotEqual(t, prompter.proposed[0], prompter.proposed[1])

	// No finalization happened for the rejected attempts.
	assert.Equal(t, []string{projectID}, store.written)
	var installs int
	for _, call := range s.calls {
		if strings.HasPrefix(call, "install:") {
			installs++
		}
	}
	assert.Equal(t, 1, installs)
}

func TestRunRejectionNeverFinalizes(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s, rejections: 1, reason: "ALREADY_EXISTS"}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	// Cancel after the first rejection so the loop exits.
	ctx, cancel := context.WithCancel(context.Background())
	prompterCancel := &cancelAfterPrompter{cancel: cancel}

	p := newProvisioner(s, prompterCancel, creator, setter, installer, enabler, store)
	_, err := p.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.written)
	for _, call := range s.calls {
		assert.True(t, strings.HasPrefix(call, "create:"),
			"rejected attempt must not reach finalization, saw %q", call)
	}
}

// cancelAfterPrompter cancels the context right after the first
// confirmation so the second loop iteration stops at the cancellation
// check.
type cancelAfterPrompter struct {
	cancel  context.CancelFunc
	confirm int
}

func (p *cancelAfterPrompter) Confirm(_ context.Context, proposed string) (string, error) {
	p.confirm++
	if p.confirm == 1 {
		defer p.cancel()
	}
	return proposed, nil
}

func TestRunPrompterOverride(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	p := newProvisioner(s, overridePrompter{value: "my-custom-project"}, creator, setter, installer, enabler, store)
	projectID, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "my-custom-project", projectID)
	assert.Equal(t, []string{"my-custom-project"}, store.written)
}

func TestRunContextSetFailureIsFatal(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s, err: errors.New("config write denied")}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	p := newProvisioner(s, &acceptPrompter{}, creator, setter, installer, enabler, store)
	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "set active project")
	assert.Empty(t, store.written)
	assert.Equal(t, 1, creator.attempts, "fatal finalization must not loop")
}

func TestRunStoreFailureIsFatal(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s, err: errors.New("disk full")}

	p := newProvisioner(s, &acceptPrompter{}, creator, setter, installer, enabler, store)
	_, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist project ID")
	assert.NotContains(t, strings.Join(s.calls, " "), "install:",
		"install must not run after a failed write")
	assert.NotContains(t, s.calls, "enable")
}

func TestRunEnablerFailureKeepsPersistedID(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s, err: errors.New("billing API unreachable")}
	store := &fakeStore{s: s}

	p := newProvisioner(s, &acceptPrompter{}, creator, setter, installer, enabler, store)
	projectID, err := p.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "billing enablement step failed")
	// Ordering contract: the file write happened before the enabler ran.
	assert.Equal(t, []string{projectID}, store.written)
}

func TestRunSkipsInstallWithoutDependency(t *testing.T) {
	s := &script{}
	creator := &fakeCreator{s: s}
	setter := &fakeContextSetter{s: s}
	installer := &fakeInstaller{s: s}
	enabler := &fakeEnabler{s: s}
	store := &fakeStore{s: s}

	p := newProvisioner(s, &acceptPrompter{}, creator, setter, installer, enabler, store)
	p.Dependency = ""
	_, err := p.Run(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, strings.Join(s.calls, " "), "install:")
	assert.Contains(t, s.calls, "enable")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &script{}
	p := newProvisioner(s, &acceptPrompter{},
		&fakeCreator{s: s}, &fakeContextSetter{s: s},
		&fakeInstaller{s: s}, &fakeEnabler{s: s}, &fakeStore{s: s})

	_, err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, s.calls)
}
