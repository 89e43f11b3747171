package workload

import "fmt"
import "bytes"
import "strconv"

import parsec "github.com/prataprc/goparsec"

// Parse script from text, one record per line.
func Parse(text []byte) (Script, error) {
	var err error

	toint := func(node parsec.ParsecNode) int64 {
		term := node.(*parsec.Terminal)
		n, e := strconv.ParseInt(term.Value, 10, 64)
		if e != nil && err == nil {
			err = fmt.Errorf("invalid integer %q", term.Value)
		}
		return n
	}
	nodemalloc := func(ns []parsec.ParsecNode) parsec.ParsecNode {
		slot, size := toint(ns[1]), toint(ns[2])
		return Record{Kind: Alloc, Slot: int(slot), Size: size}
	}
	nodefree := func(ns []parsec.ParsecNode) parsec.ParsecNode {
		return Record{Kind: Free, Slot: int(toint(ns[1]))}
	}
	one := func(ns []parsec.ParsecNode) parsec.ParsecNode {
		return ns[0]
	}

	ymalloc := parsec.And(nodemalloc,
		parsec.Token(`malloc\b`, "MALLOC"), parsec.Int(), parsec.Int())
	yfree := parsec.And(nodefree, parsec.Token(`free\b`, "FREE"), parsec.Int())
	yrecord := parsec.OrdChoice(one, ymalloc, yfree)

	script := make(Script, 0)
	for i, line := range bytes.Split(stripcomments(text), []byte("\n")) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		node, s := yrecord(parsec.NewScanner(line))
		if err != nil {
			return nil, fmt.Errorf("line %v: %w", i+1, err)
		}
		rec, ok := node.(Record)
		if !ok || !s.Endof() {
			fmsg := "unexpected input at line %v: %q"
			return nil, fmt.Errorf(fmsg, i+1, bytes.TrimSpace(line))
		} else if rec.Slot < 0 || rec.Size < 0 {
			return nil, fmt.Errorf("line %v: negative value in %q", i+1, rec)
		}
		script = append(script, rec)
	}
	return script, nil
}

// stripcomments blank out comments and trailing white-space, line
// numbers are preserved.
func stripcomments(text []byte) []byte {
	lines := bytes.Split(text, []byte("\n"))
	for i, line := range lines {
		if off := bytes.IndexByte(line, '#'); off >= 0 {
			line = line[:off]
		}
		lines[i] = bytes.TrimRight(line, " \t\r")
	}
	return bytes.Join(lines, []byte("\n"))
}
