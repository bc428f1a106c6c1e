package domain

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

const (
	templateFilePerm = 0o644

	// materializeParallelism bounds the concurrent starter-file writes.
	// The files are independent and never share a path, so write ordering
	// between them does not matter.
	materializeParallelism = 4
)

const appVueTemplate = `<template>
  <NuxtLayout>
    <NuxtPage />
  </NuxtLayout>
</template>
`

const defaultLayoutTemplate = `<template>
  <div>
    <AppHeader />
    <main>
      <slot />
    </main>
  </div>
</template>
`

const indexPageTemplate = `<script setup lang="ts">
const counter = useCounterStore()
</script>

<template>
  <div>
    <h1>Welcome</h1>
    <p>Count: {{ counter.count }}</p>
    <button @click="counter.increment()">Increment</button>
  </div>
</template>
`

const counterStoreTemplate = `import { defineStore } from 'pinia'

export const useCounterStore = defineStore('counter', {
  state: () => ({ count: 0 }),
  actions: {
    increment() {
      this.count++
    },
  },
})
`

const appHeaderTemplate = `<template>
  <header>
    <nav>
      <NuxtLink to="/">Home</NuxtLink>
    </nav>
  </header>
</template>
`

// starterFile pairs a project-relative path with its fixed content.
type starterFile struct {
	relPath string
	content string
}

// starterFiles is the fixed set the materializer writes. Paths are relative
// to the project root and live inside the target layout.
var starterFiles = []starterFile{
	{relPath: TargetDirName + "/app.vue", content: appVueTemplate},
	{relPath: TargetDirName + "/layouts/default.vue", content: defaultLayoutTemplate},
	{relPath: TargetDirName + "/pages/index.vue", content: indexPageTemplate},
	{relPath: TargetDirName + "/stores/counter.ts", content: counterStoreTemplate},
	{relPath: TargetDirName + "/components/AppHeader.vue", content: appHeaderTemplate},
}

// TemplateOutcome records what happened to one starter file.
type TemplateOutcome struct {
	Path    m.Path
	Outcome m.WriteOutcome
	Err     error
}

// TemplateMaterializer writes the starter files, each guarded by an
// existence check. It never overwrites: a file that exists is skipped
// without reading its content.
type TemplateMaterializer struct {
	fs adapter.ProjectFSAdapter
}

// NewTemplateMaterializer constructs a TemplateMaterializer.
func NewTemplateMaterializer(fs adapter.ProjectFSAdapter) *TemplateMaterializer {
	return &TemplateMaterializer{fs: fs}
}

// Materialize writes the starter set into the project. The files are
// independent, so the writes run concurrently; a failed write does not
// block the others. The joined error covers every failed file.
func (tm *TemplateMaterializer) Materialize(ctx context.Context, project m.Project) ([]TemplateOutcome, error) {
	outcomes := make([]TemplateOutcome, len(starterFiles))

	var group errgroup.Group
	group.SetLimit(materializeParallelism)

	for i, file := range starterFiles {
		group.Go(func() error {
			path := tm.fs.JoinPath(string(project.Root), file.relPath)

			if err := ctx.Err(); err != nil {
				outcomes[i] = TemplateOutcome{Path: path, Err: err}
				return nil
			}

			outcome, err := tm.fs.WriteFileIfAbsent(path, []byte(file.content), templateFilePerm)
			if err != nil {
				err = fmt.Errorf("materialize %s: %w", file.relPath, err)
			}

			outcomes[i] = TemplateOutcome{Path: path, Outcome: outcome, Err: err}

			return nil
		})
	}

	// Goroutines report failures through their outcome slot, never as a
	// group error, so every file gets its attempt.
	_ = group.Wait()

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, outcome.Err)
		}
	}

	return outcomes, errors.Join(errs...)
}
