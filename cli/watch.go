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

package cli

import (
	"context"
	"strings"
	"time"

	"github.com/purpleidea/figura/lang/interfaces"
	"github.com/purpleidea/figura/util"
	"github.com/purpleidea/figura/util/errwrap"
	"github.com/purpleidea/figura/util/recwatch"

	"golang.org/x/time/rate"
)

// WatchInterval is the shortest time between two recompiles. Editors often
// write a file several times in a row when saving.
const WatchInterval = 250 * time.Millisecond

// watch compiles everything once and then again whenever a source changes. A
// failed compile is logged and the watch goes on. It returns when the context
// is cancelled.
func (obj *compiler) watch(ctx context.Context, metadata string) (reterr error) {
	paths := []string{}
	for _, src := range obj.srcs {
		p, err := sourcePath(src)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}
	if metadata != "" {
		p, err := sourcePath(metadata)
		if err != nil {
			return err
		}
		paths = append(paths, p)
	}
	paths = util.StrRemoveDuplicatesInList(paths) // a project and its main file

	watcher, err := recwatch.NewRecWatcher(paths, false, recwatch.Logf(obj.logf), recwatch.Debug(obj.debug))
	if err != nil {
		return errwrap.Wrapf(err, "can't start the watcher")
	}
	defer func() {
		reterr = errwrap.Append(reterr, watcher.Close())
	}()

	if err := obj.compileAll(); err != nil {
		obj.logf("compile failed: %s", err)
	}

	limiter := rate.NewLimiter(rate.Every(WatchInterval), 1)
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if err := event.Error; err != nil {
				return errwrap.Wrapf(err, "watcher failed")
			}
			if strings.HasSuffix(event.Body.Name, interfaces.OutputExtension) {
				continue // one of our own documents
			}
			obj.logf("changed: %s", event.Body.Name)

		case <-ctx.Done():
			return nil
		}

		if err := limiter.Wait(ctx); err != nil {
			return nil // cancelled while waiting
		}
		// events which came in while we waited are covered by this compile
	drain:
		for {
			select {
			case event, ok := <-watcher.Events():
				if !ok {
					return nil
				}
				if err := event.Error; err != nil {
					return errwrap.Wrapf(err, "watcher failed")
				}
			default:
				break drain
			}
		}

		if err := obj.compileAll(); err != nil {
			obj.logf("compile failed: %s", err)
		}
	}
}
