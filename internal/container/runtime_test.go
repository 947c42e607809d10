// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommander answers LookPath from onPath and probe commands from ok.
// Run commands go to run when set.
type fakeCommander struct {
	onPath   map[string]bool
	ok       map[string]bool
	run      func(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) error
	lastArgs []string
}

func (f *fakeCommander) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeCommander) Command(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) > 0 && args[0] == "run" {
		f.lastArgs = append([]string{name}, args...)
		if f.run != nil {
			return f.run(ctx, stdin, stdout, stderr)
		}
		return nil
	}
	key := strings.Join(append([]string{name}, args...), " ")
	if f.ok[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func newRuntime(bin string, cmd commander) *runtime {
	for _, e := range engines {
		if e.bin == bin {
			return &runtime{engine: e, cmd: cmd}
		}
	}
	panic("unknown engine " + bin)
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *fakeCommander
		wantName string
		wantErr  bool
	}{
		{
			name:     "docker available",
			cmd:      &fakeCommander{onPath: map[string]bool{"docker": true}, ok: map[string]bool{"docker info": true}},
			wantName: "docker",
		},
		{
			name:     "podman when docker missing",
			cmd:      &fakeCommander{onPath: map[string]bool{"podman": true}, ok: map[string]bool{"podman info": true}},
			wantName: "podman",
		},
		{
			name:     "docker daemon down",
			cmd:      &fakeCommander{onPath: map[string]bool{"docker": true, "podman": true}, ok: map[string]bool{"podman info": true}},
			wantName: "podman",
		},
		{
			name: "docker preferred",
			cmd: &fakeCommander{
				onPath: map[string]bool{"docker": true, "podman": true},
				ok:     map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
		{
			name:    "none",
			cmd:     &fakeCommander{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "tried docker, podman")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	const image = "markitdown:latest"

	docker := newRuntime("docker", &fakeCommander{ok: map[string]bool{"docker image inspect " + image: true}})
	assert.NoError(t, docker.ImageExists(image))

	podman := newRuntime("podman", &fakeCommander{ok: map[string]bool{"podman image exists " + image: true}})
	assert.NoError(t, podman.ImageExists(image))

	err := newRuntime("docker", &fakeCommander{}).ImageExists(image)
	require.Error(t, err)
	assert.Contains(t, err.Error(), image)
}

func TestRun(t *testing.T) {
	cmd := &fakeCommander{
		run: func(_ context.Context, stdin io.Reader, stdout, _ io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, err := stdout.Write([]byte("text of " + string(data)))
			return err
		},
	}

	var out bytes.Buffer
	require.NoError(t, newRuntime("podman", cmd).Run(context.Background(), "markitdown:latest", strings.NewReader("report.pdf"), &out))
	assert.Equal(t, "text of report.pdf", out.String())
	assert.Equal(t, []string{"podman", "run", "--rm", "-i", "--network", "none", "markitdown:latest"}, cmd.lastArgs)
}

func TestRun_FailureIncludesStderr(t *testing.T) {
	cmd := &fakeCommander{
		run: func(_ context.Context, _ io.Reader, _, stderr io.Writer) error {
			io.WriteString(stderr, "  UnsupportedFormatException: not a PDF\n")
			return errors.New("exit status 1")
		},
	}
	err := newRuntime("docker", cmd).Run(context.Background(), "markitdown:latest", strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.True(t, strings.HasSuffix(err.Error(), ": UnsupportedFormatException: not a PDF"))
}

func TestRun_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &fakeCommander{
		run: func(ctx context.Context, _ io.Reader, _, _ io.Writer) error { return ctx.Err() },
	}
	err := newRuntime("docker", cmd).Run(ctx, "markitdown:latest", strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "", tail("  \n", 10))
	assert.Equal(t, "abc", tail(" abc\n", 10))
	assert.Equal(t, "def", tail("abcdef", 3))
}
