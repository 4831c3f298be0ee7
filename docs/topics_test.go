package docs

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every topic file is
	// listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := Topic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := All()
	if err != nil {
		t.Fatalf("All() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestTopics_Star(t *testing.T) {
	all, err := All()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Topics("*")
	if err != nil {
		t.Fatalf("Topics(*) failed: %v", err)
	}
	for _, topic := range all {
		content, _ := Topic(topic)
		if !strings.Contains(got, content) {
			t.Errorf("Topics(*) is missing topic %q", topic)
		}
	}
	if _, err := Topics("readme", "nope"); err == nil {
		t.Errorf("Topics(nope) should fail")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			runBlocks(t, file)
		})
	}
}

// scenario blocks

// block is a fenced code block of a markdown file, with a scenario role.
type block struct {
	kind    string // one of bashSetup, bashRun, bashCheck, consoleCheck
	content string
	pos     string // file:line
}

// buildPcf builds the pcf executable in dir and returns its path.
func buildPcf(t *testing.T, dir string) string {
	t.Helper()
	output := filepath.Join(dir, "pcf")
	if out, err := exec.Command("go", "build", "-o", output, "../pcf/").CombinedOutput(); err != nil {
		t.Fatalf("failed to build pcf command: %v\n%s", err, out)
	}
	return output
}

// scenarioBlocks returns the scenario blocks of a markdown file, in order.
func scenarioBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var content strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			content.Write(line.Value(source))
		}
		// goldmark nodes carry offsets, not line numbers.
		line := bytes.Count(source[:fcb.Info.Segment.Start], []byte{'\n'}) + 1
		blocks = append(blocks, block{kind: kind, content: content.String(), pos: fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario runs blocks in sequence. A bash setup block starts a new working
// directory, a console check compares the output of the last bash run.
type scenario struct {
	env     []string
	dir     string
	lastRun string
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.content)
		got := strings.ReplaceAll(strings.TrimSpace(s.lastRun), "\t", "        ")
		if want != got {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q\n", b.pos, got, want, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	output, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.lastRun = string(output)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s: %s failed: %v with output:\n%s\n", b.pos, b.kind, err, output)
		return
	}
	t.Fatalf("%s: %s failed: %v with output:\n%s\n", b.pos, b.kind, err, output)
}

// runBlocks runs the scenarios of a markdown file against a fresh pcf build.
func runBlocks(t *testing.T, file string) {
	t.Helper()
	blocks := scenarioBlocks(t, file)
	if len(blocks) == 0 {
		return
	}

	pcfDir := filepath.Dir(buildPcf(t, t.TempDir()))

	// Scenarios run with the default settings, whatever the caller environment.
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "PCF_") {
			env = append(env, kv)
		}
	}
	env = append(env, fmt.Sprintf("PATH=%s%c%s", pcfDir, os.PathListSeparator, os.Getenv("PATH")), "PCF_LOG_LEVEL=error")

	s := scenario{env: env, dir: t.TempDir()}
	for _, b := range blocks {
		s.run(t, b)
	}
}
