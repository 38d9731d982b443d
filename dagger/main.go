// Package main builds and publishes the pracor container image.
package main

import (
	"context"
	"dagger/pracor/internal/dagger"
	"fmt"
	"strings"
)

const (
	goImage      = "golang:1.24.2-alpine"
	runtimeImage = "gcr.io/distroless/static-debian12:latest"
)

// binaries are the commands shipped in the image. The first one is the entrypoint.
var binaries = []string{"rest", "db", "export"}

type Pracor struct{}

// goBuilder returns an Alpine Go toolchain with the source mounted and the module caches shared.
func goBuilder(src *dagger.Directory) *dagger.Container {
	return dag.Container().
		From(goImage).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithDirectory("/src", src).
		WithWorkdir("/src").
		WithEnvVariable("CGO_ENABLED", "0").
		WithExec([]string{"apk", "add", "--no-cache", "ca-certificates"})
}

// BuildContainer creates the runtime image for one platform.
func (m *Pracor) BuildContainer(
	// Source code directory
	// +required
	src *dagger.Directory,
	// Platform to build for
	// +optional
	// +default="linux/amd64"
	platform dagger.Platform,
) (*dagger.Container, error) {
	if platform == "" {
		platform = "linux/amd64"
	}

	goos, goarch, ok := strings.Cut(string(platform), "/")
	if !ok {
		return nil, fmt.Errorf("invalid platform %q", platform)
	}
	goarch, _, _ = strings.Cut(goarch, "/")

	builder := goBuilder(src).
		WithEnvVariable("GOOS", goos).
		WithEnvVariable("GOARCH", goarch).
		WithExec([]string{"mkdir", "-p", "/src/bin", "/src/logs"})

	for _, binary := range binaries {
		builder = builder.WithExec([]string{
			"go", "build", "-trimpath", "-ldflags=-s -w",
			"-o", "/src/bin/" + binary,
			"./cmd/" + binary,
		})
	}

	return dag.Container(dagger.ContainerOpts{Platform: platform}).
		From(runtimeImage).
		WithFile("/etc/ssl/certs/ca-certificates.crt", builder.File("/etc/ssl/certs/ca-certificates.crt")).
		WithDirectory("/app/bin", builder.Directory("/src/bin")).
		WithDirectory("/app/logs", builder.Directory("/src/logs")).
		WithDirectory("/app/config", src.Directory("config")).
		WithWorkdir("/app").
		WithExposedPort(8080).
		WithEntrypoint([]string{"/app/bin/" + binaries[0]}), nil
}

// Publish builds the image for every platform and pushes it as one multi-arch reference.
func (m *Pracor) Publish(
	ctx context.Context,
	// Source code directory
	// +required
	src *dagger.Directory,
	// Image reference (e.g. "ghcr.io/pracor/pracor:latest")
	// +required
	imageName string,
	// Comma separated platforms
	// +optional
	// +default="linux/amd64"
	platforms string,
) (string, error) {
	var variants []*dagger.Container
	for _, p := range strings.Split(platforms, ",") {
		platform := dagger.Platform(strings.TrimSpace(p))
		ctr, err := m.BuildContainer(src, platform)
		if err != nil {
			return "", err
		}
		variants = append(variants, ctr)
	}

	ref, err := dag.Container().Publish(ctx, imageName, dagger.ContainerPublishOpts{
		PlatformVariants: variants,
	})
	if err != nil {
		return "", fmt.Errorf("failed to publish image: %w", err)
	}

	return ref, nil
}

// Run builds one command and runs it against the given config directory.
func (m *Pracor) Run(
	// Source code directory
	// +required
	src *dagger.Directory,
	// Config directory
	// +required
	configDir *dagger.Directory,
	// Command to run: "rest", "db" or "export"
	// +required
	cmd string,
	// Space separated arguments (e.g. "scores recompute")
	// +optional
	args string,
) *dagger.Container {
	return goBuilder(src).
		WithDirectory("/etc/pracor/config", configDir).
		WithExec([]string{"go", "build", "-o", "/src/bin/pracor", "./cmd/" + cmd}).
		WithExec(append([]string{"/src/bin/pracor"}, strings.Fields(args)...))
}
