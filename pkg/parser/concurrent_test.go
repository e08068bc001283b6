package parser

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestConcurrentProgram checks that many goroutines can build owned trees
// from the same manager without sharing parser state.
func TestConcurrentProgram(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := NewParserManager(logger)
	defer manager.Close()

	const numGoroutines = 64
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	errChan := make(chan error, numGoroutines)

	paths := []string{"a.js", "b.ts", "c.tsx", ""}
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			src := fmt.Sprintf("export const C%d = () => <div>%d</div>;", id, id)
			path := paths[id%len(paths)]
			if path == "b.ts" {
				src = fmt.Sprintf("export const v%d: number = %d;", id, id)
			}
			file, err := manager.Program([]byte(src), path)
			if err != nil {
				errChan <- err
				return
			}
			if file.HasErrors {
				errChan <- fmt.Errorf("goroutine %d: unexpected syntax errors for %q", id, path)
			}
		}(i)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}
	assert.Empty(t, errs, "No errors should occur during concurrent parsing")

	stats := manager.GetStats()
	assert.Equal(t, numGoroutines, stats.ParsesCalled)
	// three grammars: javascript, typescript, tsx
	assert.LessOrEqual(t, stats.ParsersCreated, 3*getDefaultPoolSize())
}

// TestConcurrentLazyInitialization races pool creation for one grammar.
func TestConcurrentLazyInitialization(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := NewParserManager(logger)
	defer manager.Close()

	const numGoroutines = 32
	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			tree, err := manager.parse([]byte("let a = 1;"), GrammarJavaScript)
			if err == nil {
				tree.Close()
			}
		}()
	}
	wg.Wait()

	manager.mutex.RLock()
	pools := len(manager.pools)
	manager.mutex.RUnlock()
	assert.Equal(t, 1, pools, "exactly one pool should be created")
}

func BenchmarkProgram(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	manager := NewParserManager(logger)
	defer manager.Close()

	src := []byte(`
import React from 'react';
import PropTypes from 'prop-types';
export default function Button({ label = "ok", onClick }) {
  return <button onClick={onClick}>{label}</button>;
}
Button.propTypes = { label: PropTypes.string, onClick: PropTypes.func.isRequired };
`)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := manager.Program(src, "Button.jsx"); err != nil {
				b.Fatal(err)
			}
		}
	})
}
