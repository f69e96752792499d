// Figura
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

//go:build !root

package recwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// next waits for an event or fails after a while.
func next(t *testing.T, watcher *RecWatcher) (*Event, bool) {
	select {
	case event, ok := <-watcher.Events():
		if !ok {
			t.Errorf("events closed")
			return nil, false
		}
		return &event, true
	case <-time.After(10 * time.Second):
		t.Errorf("timeout waiting for an event")
		return nil, false
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "main.fig")
	other := filepath.Join(dir, "other.fig")
	if err := os.WriteFile(name, []byte("let a = 1;"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}

	watcher, err := NewRecWatcher([]string{name}, false, Logf(t.Logf), Debug(true))
	if err != nil {
		t.Errorf("could not start: %+v", err)
		return
	}
	defer watcher.Close()

	// other files in the same directory are ignored
	if err := os.WriteFile(other, []byte("let b = 2;"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}
	if err := os.WriteFile(name, []byte("let a = 2;"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}

	event, ok := next(t, watcher)
	if !ok {
		return
	}
	if event.Error != nil {
		t.Errorf("unexpected error: %+v", event.Error)
		return
	}
	if event.Body.Name != name {
		t.Errorf("unexpected event for: %s", event.Body.Name)
	}
}

func TestWatchDirRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Errorf("could not mkdir: %+v", err)
		return
	}

	watcher, err := NewRecWatcher([]string{dir + "/"}, true, Logf(t.Logf))
	if err != nil {
		t.Errorf("could not start: %+v", err)
		return
	}
	defer watcher.Close()

	name := filepath.Join(sub, "deep.fig")
	if err := os.WriteFile(name, []byte("let a = 1;"), 0644); err != nil {
		t.Errorf("could not write: %+v", err)
		return
	}
	event, ok := next(t, watcher)
	if !ok {
		return
	}
	if event.Error != nil || event.Body.Name != name {
		t.Errorf("unexpected event: %+v", event)
	}
}

func TestMatch(t *testing.T) {
	obj := &RecWatcher{
		files: map[string]struct{}{"/a/main.fig": {}},
		dirs:  map[string]struct{}{"/b": {}},
	}
	tests := map[string]bool{
		"/a/main.fig":  true,
		"/a/other.fig": false,
		"/b":           true,
		"/b/x.fig":     true,
		"/b/c/x.fig":   false,
		"/bc/x.fig":    false,
	}
	for name, exp := range tests {
		if m := obj.match(name); m != exp {
			t.Errorf("match(%s): got %t, expected %t", name, m, exp)
		}
	}
	obj.Recurse = true
	if !obj.match("/b/c/x.fig") {
		t.Errorf("recursive match failed")
	}
}

func TestNothingToWatch(t *testing.T) {
	if _, err := NewRecWatcher(nil, false); err == nil {
		t.Errorf("expected an error")
	}
}
