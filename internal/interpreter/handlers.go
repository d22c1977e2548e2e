// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interpreter

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matt-FFFFFF/filescript/internal/commandregistry"
	"github.com/matt-FFFFFF/filescript/internal/ctxlog"
	"github.com/matt-FFFFFF/filescript/internal/diag"
	"github.com/matt-FFFFFF/filescript/internal/dsl"
	"github.com/matt-FFFFFF/filescript/internal/fileops"
	"github.com/matt-FFFFFF/filescript/internal/pattern"
	"github.com/matt-FFFFFF/filescript/internal/result"
	"github.com/matt-FFFFFF/filescript/internal/session"
)

const overwriteKeyword = "overwrite"

type handlerFunc = func(ctx context.Context, cmd dsl.Command, res *result.Result) error

func (i *Interpreter) registerHandlers() error {
	handlers := map[dsl.Verb]handlerFunc{
		dsl.VerbOpen:       i.open,
		dsl.VerbRead:       i.read,
		dsl.VerbWrite:      i.write,
		dsl.VerbAppend:     i.append,
		dsl.VerbShow:       i.show,
		dsl.VerbTruncate:   i.truncate,
		dsl.VerbCountLines: i.countLines,
		dsl.VerbSearch:     i.search,
		dsl.VerbReplace:    i.replace,
		dsl.VerbCopy:       i.copy,
		dsl.VerbMove:       i.move,
		dsl.VerbRemove:     i.remove,
		dsl.VerbRename:     i.rename,
		dsl.VerbList:       i.list,
		dsl.VerbDump:       i.dump,
		dsl.VerbHelp:       i.help,
		dsl.VerbClose:      i.closeVar,
		dsl.VerbSet:        i.set,
		dsl.VerbAlias:      i.alias,
		dsl.VerbCd:         i.cd,
		dsl.VerbPwd:        i.pwd,
		dsl.VerbExit:       i.exit,
	}

	for v, h := range handlers {
		if err := i.registry.Register(v, commandregistry.HandlerFunc(h)); err != nil {
			return err
		}
	}

	if missing := i.registry.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %v", commandregistry.ErrNoHandler, missing)
	}

	return nil
}

// resolvePath turns a path argument into an absolute path. An unquoted name bound to
// a path alias or file handle stands for that variable's path.
func (i *Interpreter) resolvePath(arg dsl.Arg) (string, error) {
	if !arg.Quoted && dsl.IsIdentifier(arg.Value) {
		if v, err := i.session.Resolve(arg.Value); err == nil {
			switch x := v.(type) {
			case session.PathAlias:
				return x.Path, nil
			case *session.FileHandle:
				return x.Path(), nil
			default:
				return "", &session.TypeMismatchError{
					Name: arg.Value,
					Want: []session.Kind{session.KindPath, session.KindHandle},
					Got:  v.Kind(),
				}
			}
		}
	}

	return fileops.Resolve(i.session.Cwd(), arg.Value), nil
}

func inUse(op, path, holder string) error {
	return &fileops.PathError{Op: op, Path: path, Kind: fileops.InUse, Err: fmt.Errorf("held by variable %q", holder)}
}

func (i *Interpreter) open(ctx context.Context, cmd dsl.Command, res *result.Result) error {
	path, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return err
	}

	mode := session.DefaultMode
	explicitMode := len(cmd.Args) > 1

	if explicitMode {
		if mode, err = session.ParseMode(cmd.Args[1].Value); err != nil {
			return err
		}
	}

	name := cmd.Target

	if holder, h, ok := i.session.HandleFor(path); ok && holder != name {
		if i.reopen == ReopenError {
			return inUse("open", path, holder)
		}

		// A reused handle keeps its mode, so an explicit different mode cannot be honoured.
		if explicitMode && mode != h.Mode() {
			return &fileops.PathError{
				Op:   "open",
				Path: path,
				Kind: fileops.InUse,
				Err:  fmt.Errorf("held by variable %q with mode %q, requested %q", holder, h.Mode(), mode),
			}
		}

		ctxlog.Debug(ctx, "reusing open handle", "path", path, "from", holder, "to", name)

		if err := i.session.Transfer(holder, name); err != nil {
			return err
		}

		res.Output = h.Describe()

		return nil
	}

	h, err := i.engine.Open(path, mode)
	if err != nil {
		return err
	}

	if err := i.session.Bind(name, h); err != nil {
		return err
	}

	res.Output = h.Describe()

	return nil
}

func (i *Interpreter) read(_ context.Context, cmd dsl.Command, res *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	if err := i.engine.Read(c); err != nil {
		return err
	}

	res.Output = c.Text()

	return nil
}

func (i *Interpreter) show(_ context.Context, cmd dsl.Command, res *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	res.Output = c.Text()

	return nil
}

func (i *Interpreter) write(_ context.Context, cmd dsl.Command, _ *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	return i.engine.Write(c, cmd.Args[1].Value)
}

func (i *Interpreter) append(_ context.Context, cmd dsl.Command, _ *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	return i.engine.Append(c, cmd.Args[1].Value)
}

func (i *Interpreter) truncate(_ context.Context, cmd dsl.Command, _ *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	return i.engine.Truncate(c)
}

func (i *Interpreter) countLines(_ context.Context, cmd dsl.Command, res *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	res.Count = fileops.CountLines(c.Text())
	res.Output = strconv.Itoa(res.Count)

	return nil
}

func (i *Interpreter) search(_ context.Context, cmd dsl.Command, res *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	matches, err := pattern.Search(i.compiler, c.Text(), cmd.Args[1].Value, cmd.Flags)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, m.String())
	}

	res.Matches = matches
	res.Count = len(matches)
	res.Output = strings.Join(lines, "\n")

	return nil
}

func (i *Interpreter) replace(_ context.Context, cmd dsl.Command, res *result.Result) error {
	c, err := i.session.ResolveContent(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	out, n, err := pattern.Replace(i.compiler, c.Text(), cmd.Args[1].Value, cmd.Flags, cmd.Args[2].Value)
	if err != nil {
		return err
	}

	if n > 0 {
		if err := i.engine.Rewrite(c, out); err != nil {
			return err
		}
	}

	res.Count = n
	res.Output = strconv.Itoa(n)

	return nil
}

// transferArgs resolves the source and destination of COPY and MOVE and the overwrite keyword.
func (i *Interpreter) transferArgs(cmd dsl.Command, overwrite bool) (string, string, bool, error) {
	src, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return "", "", false, err
	}

	dst, err := i.resolvePath(cmd.Args[1])
	if err != nil {
		return "", "", false, err
	}

	if len(cmd.Args) > 2 {
		kw := cmd.Args[2].Value
		if !strings.EqualFold(kw, overwriteKeyword) {
			return "", "", false, &ArgumentError{Verb: cmd.Verb.String(), Arg: kw, Msg: `expected "overwrite"`}
		}

		overwrite = true
	}

	target := dst
	if fi, err := i.engine.Fs().Stat(dst); err == nil && fi.IsDir() {
		target = filepath.Join(dst, filepath.Base(src))
	}

	if holder, _, ok := i.session.HandleFor(target); ok {
		return "", "", false, inUse(strings.ToLower(cmd.Verb.String()), target, holder)
	}

	return src, dst, overwrite, nil
}

func (i *Interpreter) copy(_ context.Context, cmd dsl.Command, res *result.Result) error {
	src, dst, overwrite, err := i.transferArgs(cmd, i.copyOverwrite)
	if err != nil {
		return err
	}

	final, err := i.engine.Copy(src, dst, overwrite)
	if err != nil {
		return err
	}

	res.Output = final

	return nil
}

func (i *Interpreter) move(_ context.Context, cmd dsl.Command, res *result.Result) error {
	src, dst, overwrite, err := i.transferArgs(cmd, false)
	if err != nil {
		return err
	}

	final, err := i.engine.Move(src, dst, overwrite)
	if err != nil {
		return err
	}

	if _, h, ok := i.session.HandleFor(src); ok {
		h.Repoint(final)
	}

	res.Output = final

	return nil
}

func (i *Interpreter) remove(_ context.Context, cmd dsl.Command, res *result.Result) error {
	path, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return err
	}

	if holder, _, ok := i.session.HandleFor(path); ok {
		return inUse("remove", path, holder)
	}

	if err := i.engine.Remove(path); err != nil {
		return err
	}

	res.Output = path

	return nil
}

func (i *Interpreter) rename(_ context.Context, cmd dsl.Command, res *result.Result) error {
	oldPath, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return err
	}

	newPath := fileops.Sibling(i.session.Cwd(), oldPath, cmd.Args[1].Value)

	if err := i.engine.Rename(oldPath, newPath); err != nil {
		return err
	}

	if _, h, ok := i.session.HandleFor(oldPath); ok {
		h.Repoint(newPath)
	}

	res.Output = newPath

	return nil
}

func (i *Interpreter) list(_ context.Context, cmd dsl.Command, res *result.Result) error {
	dir, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return err
	}

	entries, err := i.engine.List(dir)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	lines := make([]string, 0, len(entries))

	for _, e := range entries {
		names = append(names, e.Name)

		if e.IsDir {
			lines = append(lines, e.Name+"/")
			continue
		}

		lines = append(lines, e.Name)
	}

	res.Entries = names
	res.Count = len(names)
	res.Output = strings.Join(lines, "\n")

	return nil
}

func (i *Interpreter) dump(_ context.Context, _ dsl.Command, res *result.Result) error {
	res.Output = diag.Dump(i.session.Variables())
	return nil
}

func (i *Interpreter) help(_ context.Context, cmd dsl.Command, res *result.Result) error {
	if len(cmd.Args) == 0 {
		res.Output = diag.HelpAll()
		return nil
	}

	out, err := diag.HelpVerb(cmd.Args[0].Value)
	if err != nil {
		return err
	}

	res.Output = out

	return nil
}

func (i *Interpreter) closeVar(_ context.Context, cmd dsl.Command, _ *result.Result) error {
	return i.session.Unbind(cmd.Args[0].Value)
}

func (i *Interpreter) set(_ context.Context, cmd dsl.Command, _ *result.Result) error {
	return i.session.Bind(cmd.Args[0].Value, session.NewStringBuffer(cmd.Args[1].Value))
}

func (i *Interpreter) alias(_ context.Context, cmd dsl.Command, res *result.Result) error {
	path, err := i.resolvePath(cmd.Args[1])
	if err != nil {
		return err
	}

	if err := i.session.Bind(cmd.Args[0].Value, session.PathAlias{Path: path}); err != nil {
		return err
	}

	res.Output = path

	return nil
}

func (i *Interpreter) cd(_ context.Context, cmd dsl.Command, res *result.Result) error {
	dir, err := i.resolvePath(cmd.Args[0])
	if err != nil {
		return err
	}

	if err := i.engine.EnsureDir("cd", dir); err != nil {
		return err
	}

	i.session.SetCwd(dir)
	res.Output = dir

	return nil
}

func (i *Interpreter) pwd(_ context.Context, _ dsl.Command, res *result.Result) error {
	res.Output = i.session.Cwd()
	return nil
}

func (i *Interpreter) exit(ctx context.Context, _ dsl.Command, _ *result.Result) error {
	ctxlog.Debug(ctx, "exit requested", "session", i.session.ID())
	i.stopped = true

	return nil
}
