// Package explain builds tutor prompts that ask a language model to walk a
// learner through a finished run. Prompts are printed, never sent.
package explain

import (
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/yildizm/go-promptfmt"
)

const systemPrompt = "You are a patient computer science tutor. Explain algorithm runs step by step, " +
	"relate the measured counters to the algorithm's complexity, and keep the language accessible to beginners."

// Explanation is the response shape the prompt asks for
type Explanation struct {
	Summary string `json:"summary"`
	Steps   []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"steps"`
	Complexity   string   `json:"complexity"`
	Observations []string `json:"observations"`
	Questions    []string `json:"questions"`
}

// RunPattern creates prompts explaining a run or a comparison
type RunPattern struct {
	promptfmt.BasePattern
	Report       *formatter.Report
	IncludeFrame bool
	MaxFrameRows int
}

// NewRunPattern creates a pattern that includes the final frame
func NewRunPattern() *RunPattern {
	return &RunPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Explains an instrumented algorithm run to a learner",
			Tags:        []string{"algorithms", "education", "visualization"},
		},
		IncludeFrame: true,
		MaxFrameRows: 30,
	}
}

// Run is shorthand for NewRunPattern
func Run() *RunPattern {
	return NewRunPattern()
}

func (p *RunPattern) WithReport(report *formatter.Report) *RunPattern {
	p.Report = report
	return p
}

func (p *RunPattern) WithoutFrame() *RunPattern {
	p.IncludeFrame = false
	return p
}

func (p *RunPattern) WithMaxFrameRows(n int) *RunPattern {
	p.MaxFrameRows = n
	return p
}

// Build assembles the prompt
func (p *RunPattern) Build() *promptfmt.Prompt {
	if p.Report == nil {
		return promptfmt.New().
			System(systemPrompt).
			User("Explain how to read step, comparison and swap counts when visualizing an algorithm.").
			Build()
	}

	r := p.Report
	var pb *promptfmt.PromptBuilder
	if r.IsComparison() {
		pb = promptfmt.New().
			System(systemPrompt).
			User("Explain why these %d algorithms ranked as they did on the same input (array size %d, %s data, %s graph).",
				len(r.Comparison), r.Settings.ArraySize, r.Settings.DataType, r.Settings.GraphType)
		p.addComparisonContext(pb)
	} else {
		pb = promptfmt.New().
			System(systemPrompt).
			User("Explain this run of %s.\n\nStatus: %s\nSteps: %d\nComparisons: %d\nSwaps: %d\nResult: %s",
				r.Algorithm, r.Status(), r.Stats.Steps, r.Stats.Comparisons, r.Stats.Swaps, r.Summary)
		p.addAlgorithmContext(pb)
		if p.IncludeFrame {
			p.addFrameContext(pb)
		}
	}

	return pb.ExpectJSON(&Explanation{}).Build()
}

func (p *RunPattern) addAlgorithmContext(pb *promptfmt.PromptBuilder) {
	info := p.Report.Info
	if info == nil {
		return
	}
	pb.AddContext("algorithm", fmt.Sprintf("%s (%s)\n%s\nTime complexity: %s\nSpace complexity: %s\n",
		info.Name, info.Category, info.Description, info.TimeComplexity, info.SpaceComplexity))

	s := p.Report.Settings
	pb.AddContext("settings", fmt.Sprintf("Array size: %d\nData type: %s\nGraph type: %s\n",
		s.ArraySize, s.DataType, s.GraphType))
}

func (p *RunPattern) addFrameContext(pb *promptfmt.PromptBuilder) {
	lines := strings.Split(strings.TrimRight(p.Report.Frame, "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return
	}
	if p.MaxFrameRows > 0 && len(lines) > p.MaxFrameRows {
		lines = append(lines[:p.MaxFrameRows], "...")
	}
	pb.AddContext("final_state", strings.Join(lines, "\n")+"\n")
}

func (p *RunPattern) addComparisonContext(pb *promptfmt.PromptBuilder) {
	var b strings.Builder
	b.WriteString("Ranking:\n")
	for _, res := range p.Report.Comparison {
		fmt.Fprintf(&b, "%d. %s: %d steps, %d comparisons, %d swaps\n",
			res.Rank, res.Name, res.Steps, res.Comparisons, res.Swaps)
	}
	pb.AddContext("ranking", b.String())
}

// ParseExplanation decodes a model response to a prompt built by RunPattern.
// It reports false when the response holds no usable JSON.
func ParseExplanation(content string) (*Explanation, bool) {
	var e Explanation
	if !promptfmt.NewResponse(content).TryParseJSON(&e).Success {
		return nil, false
	}
	return &e, true
}

// Render formats an explanation as plain text
func (e *Explanation) Render() string {
	var b strings.Builder
	if e.Summary != "" {
		b.WriteString(e.Summary + "\n\n")
	}
	for i, step := range e.Steps {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, step.Title, step.Description)
	}
	if e.Complexity != "" {
		fmt.Fprintf(&b, "\nComplexity: %s\n", e.Complexity)
	}
	for _, o := range e.Observations {
		b.WriteString("• " + o + "\n")
	}
	if len(e.Questions) > 0 {
		b.WriteString("\nQuestions to try:\n")
		for _, q := range e.Questions {
			b.WriteString("? " + q + "\n")
		}
	}
	return b.String()
}
