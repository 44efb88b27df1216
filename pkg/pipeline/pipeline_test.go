package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/arthur-debert/rigup/pkg/config"
	"github.com/arthur-debert/rigup/pkg/dialog/dialogtest"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/installer"
	"github.com/arthur-debert/rigup/pkg/manifest"
	"github.com/arthur-debert/rigup/pkg/runner/runnertest"
	"github.com/arthur-debert/rigup/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	id         string
	annotation string
}

// recorder is an installer that remembers what it was asked to do.
type recorder struct {
	calls   []call
	outcome installer.Outcome
	fail    map[string]bool
}

func (r *recorder) Install(_ context.Context, _ *session.Session, id, annotation string) (installer.Outcome, error) {
	r.calls = append(r.calls, call{id, annotation})
	if r.fail[id] {
		return installer.OutcomeInstalled, errors.New(errors.ErrSubprocessFailed, "exit status 1")
	}
	return r.outcome, nil
}

func recorderSet() (installer.Set, map[manifest.Tag]*recorder) {
	recs := map[manifest.Tag]*recorder{}
	for _, tag := range manifest.Tags {
		recs[tag] = &recorder{fail: map[string]bool{}}
	}
	return installer.Set{
		Official: recs[manifest.TagOfficial],
		AUR:      recs[manifest.TagAUR],
		Git:      recs[manifest.TagGit],
		Pip:      recs[manifest.TagPip],
	}, recs
}

func parse(t *testing.T, lines ...string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.ParseCSV(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return m
}

func TestRun_SkipsCommentsAndDispatches(t *testing.T) {
	m := parse(t,
		`OFFICIAL,htop,"process viewer"`,
		`# comment`,
		`GIT,https://example.com/foo.git,builds from source`,
	)
	set, recs := recorderSet()
	sess := session.New("ada", "/home/ada", "")
	d := dialogtest.New()

	summary := Run(context.Background(), sess, m, set, d, Options{})

	require.True(t, summary.OK())
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Installed)
	assert.Equal(t, 2, sess.Progress.Current)

	assert.Equal(t, []call{{"htop", "process viewer"}}, recs[manifest.TagOfficial].calls)
	assert.Equal(t, []call{{"https://example.com/foo.git", "builds from source"}}, recs[manifest.TagGit].calls)
	assert.Empty(t, recs[manifest.TagAUR].calls)
	assert.Empty(t, recs[manifest.TagPip].calls)

	assert.Equal(t, []string{
		"Installing `htop` (1 of 2). process viewer",
		"Installing `foo` (2 of 2) with git and make. builds from source",
	}, d.Progress)
}

func TestRun_RunsInstallerCommandsInOrder(t *testing.T) {
	m := parse(t,
		`OFFICIAL,htop,"process viewer"`,
		`# comment`,
		`GIT,https://example.com/foo.git,builds from source`,
	)
	cfg, err := config.Load("", false)
	require.NoError(t, err)
	r := runnertest.New()
	sess := session.New("ada", "/home/ada", "")

	summary := Run(context.Background(), sess, m, installer.NewSet(r, cfg), dialogtest.New(), Options{})

	require.True(t, summary.OK())
	assert.Equal(t, []string{
		"pacman --noconfirm --needed -S htop",
		"git -C /home/ada/.local/src clone --depth 1 --single-branch --no-tags -q https://example.com/foo.git /home/ada/.local/src/foo",
		"make",
		"make install",
	}, r.Commands())
}

func TestRun_SkipsInstalledAURPackage(t *testing.T) {
	m := parse(t, `A,lf-git,file manager`)
	cfg, err := config.Load("", false)
	require.NoError(t, err)
	r := runnertest.New()
	sess := session.New("ada", "/home/ada", "")
	sess.Installed.Add("lf-git")

	summary := Run(context.Background(), sess, m, installer.NewSet(r, cfg), dialogtest.New(), Options{})

	assert.True(t, summary.OK())
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, r.Calls)
}

func TestRun_MalformedLineDoesNotStopTheRun(t *testing.T) {
	m := parse(t, `,htop,viewer`, `neovim`, `,git,vcs`)
	cfg, err := config.Load("", false)
	require.NoError(t, err)
	r := runnertest.New()
	sess := session.New("ada", "/home/ada", "")

	summary := Run(context.Background(), sess, m, installer.NewSet(r, cfg), dialogtest.New(), Options{})

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Installed)
	assert.Equal(t, []string{"neovim"}, summary.FailedIdentifiers())
	assert.Equal(t, 3, summary.Processed())
	assert.NoError(t, summary.Err)
	assert.Equal(t, []string{
		"pacman --noconfirm --needed -S htop",
		"pacman --noconfirm --needed -S git",
	}, r.Commands())

	failErr := summary.Failed[0].Err
	assert.True(t, errors.IsErrorCode(failErr, errors.ErrRecordInstallFailed))
	assert.True(t, errors.HasErrorCode(failErr, errors.ErrManifestInvalid))
	assert.False(t, errors.IsFatal(failErr))
	assert.Equal(t, 2, errors.GetErrorDetails(failErr)["line"])
}

func TestRun_MalformedLineStopsStrictRun(t *testing.T) {
	m := parse(t, `,htop,viewer`, `neovim`, `,git,vcs`)
	set, recs := recorderSet()

	summary := Run(context.Background(), session.New("ada", "/home/ada", ""), m, set, dialogtest.New(), Options{Strict: true})

	require.Error(t, summary.Err)
	assert.Equal(t, []call{{"htop", "viewer"}}, recs[manifest.TagOfficial].calls)
}

func TestRun_DispatchByTag(t *testing.T) {
	m := parse(t,
		`,vim,`,
		`X,unknown-tag,`,
		`A,yay-pkg,`,
		`G,https://example.com/g.git,`,
		`P,pkg,`,
	)
	set, recs := recorderSet()

	summary := Run(context.Background(), session.New("ada", "/home/ada", ""), m, set, dialogtest.New(), Options{})

	require.True(t, summary.OK())
	assert.Len(t, recs[manifest.TagOfficial].calls, 2)
	assert.Len(t, recs[manifest.TagAUR].calls, 1)
	assert.Len(t, recs[manifest.TagGit].calls, 1)
	assert.Len(t, recs[manifest.TagPip].calls, 1)
}

func TestRun_AnnotationQuoting(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"double", `,a,"quoted text"`, "quoted text"},
		{"single", `,a,'quoted text'`, "quoted text"},
		{"bare", `,a,plain text`, "plain text"},
		{"mismatched", `,a,"half'`, `"half'`},
		{"inner_only", `,a,say "hi" there`, `say "hi" there`},
		{"with_comma", `,a,"one, two"`, "one, two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, recs := recorderSet()
			Run(context.Background(), session.New("ada", "/home/ada", ""), parse(t, tt.line), set, dialogtest.New(), Options{})

			require.Len(t, recs[manifest.TagOfficial].calls, 1)
			assert.Equal(t, tt.want, recs[manifest.TagOfficial].calls[0].annotation)
		})
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	m := parse(t,
		`,first,`,
		`,broken,`,
		`,third,`,
	)
	set, recs := recorderSet()
	recs[manifest.TagOfficial].fail["broken"] = true

	summary := Run(context.Background(), session.New("ada", "/home/ada", ""), m, set, dialogtest.New(), Options{})

	assert.False(t, summary.OK())
	assert.NoError(t, summary.Err)
	assert.Equal(t, 2, summary.Installed)
	assert.Equal(t, []string{"broken"}, summary.FailedIdentifiers())
	assert.Len(t, recs[manifest.TagOfficial].calls, 3)

	failErr := summary.Failed[0].Err
	assert.True(t, errors.IsErrorCode(failErr, errors.ErrRecordInstallFailed))
	assert.True(t, errors.HasErrorCode(failErr, errors.ErrSubprocessFailed))
	assert.Equal(t, 2, errors.GetErrorDetails(failErr)["line"])
}

func TestRun_Strict(t *testing.T) {
	m := parse(t,
		`,first,`,
		`,broken,`,
		`,third,`,
	)
	set, recs := recorderSet()
	recs[manifest.TagOfficial].fail["broken"] = true

	summary := Run(context.Background(), session.New("ada", "/home/ada", ""), m, set, dialogtest.New(), Options{Strict: true})

	require.Error(t, summary.Err)
	assert.True(t, errors.IsErrorCode(summary.Err, errors.ErrRecordInstallFailed))
	assert.Len(t, recs[manifest.TagOfficial].calls, 2)
	assert.Equal(t, 2, summary.Processed())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	set, recs := recorderSet()
	sess := session.New("ada", "/home/ada", "")

	summary := Run(ctx, sess, parse(t, `,a,`, `,b,`), set, dialogtest.New(), Options{})

	assert.True(t, errors.HasErrorCode(summary.Err, errors.ErrOperatorCancelled))
	assert.Empty(t, recs[manifest.TagOfficial].calls)
	assert.Equal(t, 0, sess.Progress.Current)
}

func TestRun_EmptyManifest(t *testing.T) {
	set, _ := recorderSet()
	summary := Run(context.Background(), session.New("ada", "/home/ada", ""), nil, set, dialogtest.New(), Options{})

	assert.True(t, summary.OK())
	assert.Equal(t, 0, summary.Total)
}

func TestProgressText(t *testing.T) {
	tests := []struct {
		rec  manifest.Record
		ann  string
		want string
	}{
		{manifest.Record{Tag: manifest.TagOfficial, Identifier: "htop"}, "viewer", "Installing `htop` (1 of 9). viewer"},
		{manifest.Record{Tag: manifest.TagAUR, Identifier: "lf-git"}, "", "Installing `lf-git` (1 of 9) from the AUR."},
		{manifest.Record{Tag: manifest.TagPip, Identifier: "ueberzug"}, "images", "Installing `ueberzug` (1 of 9) with pip. images"},
	}
	for _, tt := range tests {
		t.Run(tt.rec.Identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressText(tt.rec, tt.ann, 1, 9))
		})
	}
}
