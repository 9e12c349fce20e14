// This file is part of Lockstep.
//
// Lockstep is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Lockstep is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Lockstep.  If not, see <https://www.gnu.org/licenses/>.

package script

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jetsetilly/lockstep/curated"
)

// Sentinel errors for the script package.
const (
	NotAScript         = "script: %s: not a lockstep script"
	UnsupportedVersion = "script: %s: unsupported version (%s)"
	ParseError         = "script: %s: line %d: %s"
	LineError          = "script: %s: line %d: %v"
	NoProcedure        = "script: %s: no procedure named %s"
	ImportError        = "script: %s: %v"
	UnknownBuiltin     = "unknown builtin (%s)"
)

// the first two lines of every script
const (
	headerID      = "lockstepscript"
	headerVersion = "v1"
)

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

// Entry is the name of the procedure that is run by default.
const Entry = "main"

type opcode int

const (
	opExec opcode = iota
	opYield
	opDelegate
	opAssert
	opBranch
	opJump
	opRepeat
	opRepeatEnd
	opReturn
)

type instruction struct {
	op   opcode
	text string

	// name to bind the result of a delegation to
	bind string

	// target of a branch or jump. for opRepeat the target is the instruction
	// after the matching opRepeatEnd. for opRepeatEnd the target is the first
	// instruction of the loop body
	jump int

	// line number in the source file
	line int
}

type procedure struct {
	name   string
	params []string
	code   []instruction
	line   int
}

// Script is a parsed script file.
type Script struct {
	Name string

	// list of builtins imported by the script. a single entry of "*" means
	// that all builtins are imported
	Imports []string

	// digest recorded in the script or the empty string if there is none
	Digest string

	procs map[string]*procedure
	order []string
}

var (
	procRegexp     = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*(?:\(([^)]*)\))?\s*:$`)
	identRegexp    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	delegateRegexp = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*=\s*yield\s+from\s+(.+)$`)
)

// Load reads and parses the script file.
func Load(filename string) (*Script, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return Parse(filename, string(b))
}

// block is an open while, if or repeat
type block struct {
	kind  string
	start int
	line  int

	// instructions waiting for the end of the block to be known
	patch []int
}

// Parse the source of a script. The name is used in error messages.
func Parse(name string, src string) (*Script, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")

	if len(lines) < headerNumLines || strings.TrimSpace(lines[headerLineID]) != headerID {
		return nil, curated.Errorf(NotAScript, name)
	}
	if v := strings.TrimSpace(lines[headerLineVersion]); v != headerVersion {
		return nil, curated.Errorf(UnsupportedVersion, name, v)
	}

	scr := &Script{
		Name:  name,
		procs: make(map[string]*procedure),
	}

	var proc *procedure
	var blocks []*block

	parseErr := func(ln int, msg string, args ...any) error {
		return curated.Errorf(ParseError, name, ln, fmt.Sprintf(msg, args...))
	}

	closeProc := func() error {
		if proc == nil {
			return nil
		}
		if len(blocks) > 0 {
			b := blocks[len(blocks)-1]
			return parseErr(b.line, "%s without end", b.kind)
		}
		proc = nil
		return nil
	}

	for i := headerNumLines; i < len(lines); i++ {
		ln := i + 1
		raw := lines[i]

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "--") {
			if d, ok := strings.CutPrefix(trimmed, digestPrefix); ok {
				scr.Digest = strings.TrimSpace(d)
			}
			continue
		}

		text := strings.TrimSpace(stripComment(trimmed))

		// unindented lines are imports or procedure headers
		if raw[0] != ' ' && raw[0] != '\t' {
			if err := closeProc(); err != nil {
				return nil, err
			}

			if imports, ok := strings.CutPrefix(text, "import "); ok {
				for _, n := range strings.Split(imports, ",") {
					n = strings.TrimSpace(n)
					if n != "*" && !identRegexp.MatchString(n) {
						return nil, parseErr(ln, "invalid import (%s)", n)
					}
					scr.Imports = append(scr.Imports, n)
				}
				continue
			}

			m := procRegexp.FindStringSubmatch(text)
			if m == nil {
				return nil, parseErr(ln, "expected procedure or import")
			}
			if _, ok := scr.procs[m[1]]; ok {
				return nil, parseErr(ln, "procedure %s already defined", m[1])
			}

			proc = &procedure{name: m[1], line: ln}
			if strings.TrimSpace(m[2]) != "" {
				for _, p := range strings.Split(m[2], ",") {
					p = strings.TrimSpace(p)
					if !identRegexp.MatchString(p) {
						return nil, parseErr(ln, "invalid parameter (%s)", p)
					}
					proc.params = append(proc.params, p)
				}
			}
			scr.procs[proc.name] = proc
			scr.order = append(scr.order, proc.name)
			continue
		}

		if proc == nil {
			return nil, parseErr(ln, "statement outside of procedure")
		}

		pc := len(proc.code)
		ins := instruction{text: text, line: ln}

		first, rest, _ := strings.Cut(text, " ")
		rest = strings.TrimSpace(rest)

		switch {
		case isLuaBlock(first, text):
			ins.op = opExec

		case text == "yield":
			ins.op = opYield

		case first == "yield":
			expr, ok := strings.CutPrefix(rest, "from ")
			if !ok || strings.TrimSpace(expr) == "" {
				return nil, parseErr(ln, "expected yield from")
			}
			ins.op = opDelegate
			ins.text = strings.TrimSpace(expr)

		case delegateRegexp.MatchString(text):
			m := delegateRegexp.FindStringSubmatch(text)
			ins.op = opDelegate
			ins.bind = m[1]
			ins.text = m[2]

		case first == "assert":
			if rest == "" {
				return nil, parseErr(ln, "assert without condition")
			}
			ins.op = opAssert
			ins.text = rest

		case first == "while" || first == "if":
			if rest == "" {
				return nil, parseErr(ln, "%s without condition", first)
			}
			ins.op = opBranch
			ins.text = rest
			blocks = append(blocks, &block{kind: first, start: pc, line: ln, patch: []int{pc}})

		case first == "repeat":
			if rest == "" {
				return nil, parseErr(ln, "repeat without count")
			}
			ins.op = opRepeat
			ins.text = rest
			blocks = append(blocks, &block{kind: first, start: pc, line: ln, patch: []int{pc}})

		case text == "else":
			if len(blocks) == 0 || blocks[len(blocks)-1].kind != "if" {
				return nil, parseErr(ln, "else without if")
			}
			b := blocks[len(blocks)-1]
			b.kind = "else"

			// the jump over the else body is patched when the block ends.
			// the branch of the if goes to the instruction after the jump
			ins.op = opJump
			proc.code[b.patch[0]].jump = pc + 1
			b.patch = []int{pc}

		case text == "end":
			if len(blocks) == 0 {
				return nil, parseErr(ln, "end without block")
			}
			b := blocks[len(blocks)-1]
			blocks = blocks[:len(blocks)-1]

			switch b.kind {
			case "while":
				ins.op = opJump
				ins.jump = b.start
			case "repeat":
				ins.op = opRepeatEnd
				ins.jump = b.start + 1
			default:
				// nothing to do at the end of an if or else body
				for _, p := range b.patch {
					proc.code[p].jump = pc
				}
				continue
			}

			for _, p := range b.patch {
				proc.code[p].jump = pc + 1
			}

		case first == "return":
			ins.op = opReturn
			ins.text = rest

		default:
			ins.op = opExec
		}

		proc.code = append(proc.code, ins)
	}

	if err := closeProc(); err != nil {
		return nil, err
	}

	return scr, nil
}

// one line Lua blocks are passed to the evaluator unchanged
func isLuaBlock(first string, text string) bool {
	switch first {
	case "while", "if", "do":
		return strings.HasSuffix(text, " end")
	case "repeat":
		return strings.Contains(text, " until ")
	case "for", "local", "function":
		return true
	}
	return false
}

// stripComment removes a trailing comment. Comment markers inside string
// literals are ignored.
func stripComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '-':
			if i+1 < len(s) && s[i+1] == '-' {
				return s[:i]
			}
		}
	}
	return s
}

// Procedures returns the names of the procedures in the order they appear in
// the script.
func (scr *Script) Procedures() []string {
	return scr.order
}
