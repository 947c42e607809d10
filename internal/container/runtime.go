// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs extraction images through a local docker or podman
// installation.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// probeTimeout bounds the info and image checks so a wedged daemon cannot
// stall detection.
var probeTimeout = 10 * time.Second

// stderrTail is how much container stderr is kept for error messages.
const stderrTail = 2048

// Runtime is a container engine able to run a throwaway extraction image.
type Runtime interface {
	// Name is the engine binary ("docker" or "podman").
	Name() string

	// Available reports whether the engine is on PATH and its daemon answers.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts image with networking disabled, feeding stdin and copying
	// the container's stdout to stdout. Cancelling ctx kills the client.
	Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error
}

// commander runs external commands. Tests substitute a fake.
type commander interface {
	LookPath(file string) (string, error)
	Command(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osCommander) Command(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// engine describes one supported container binary.
type engine struct {
	bin        string
	imageCheck []string
}

// engines in detection order.
var engines = []engine{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

type runtime struct {
	engine
	cmd commander
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) probe(args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	return r.cmd.Command(ctx, r.bin, args, nil, io.Discard, io.Discard)
}

func (r *runtime) Available() bool {
	if _, err := r.cmd.LookPath(r.bin); err != nil {
		return false
	}
	return r.probe("info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.imageCheck...), image)
	if err := r.probe(args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, image string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	args := []string{"run", "--rm", "-i", "--network", "none", image}
	if err := r.cmd.Command(ctx, r.bin, args, stdin, stdout, &stderr); err != nil {
		if msg := tail(stderr.String(), stderrTail); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}

// DetectRuntime returns the first working engine, docker before podman.
func DetectRuntime() (Runtime, error) {
	return detectRuntime(osCommander{})
}

func detectRuntime(cmd commander) (Runtime, error) {
	names := make([]string, 0, len(engines))
	for _, e := range engines {
		rt := &runtime{engine: e, cmd: cmd}
		if rt.Available() {
			return rt, nil
		}
		names = append(names, e.bin)
	}
	return nil, fmt.Errorf("no container runtime available: tried %s", strings.Join(names, ", "))
}
