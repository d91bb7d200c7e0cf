package lesson

import (
	"fmt"
	"path"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/drill"
	lsn "github.com/abhisek/sabi/internal/lesson"
	"github.com/abhisek/sabi/internal/ui/components"
	"github.com/abhisek/sabi/internal/ui/layout"
	"github.com/abhisek/sabi/internal/ui/theme"
)

var phaseTitles = map[lsn.Phase]string{
	lsn.PhasePresentation: "New words",
	lsn.PhaseDialogue:     "Conversation",
	lsn.PhaseExercise:     "Pick the meaning",
	lsn.PhaseFillInGap:    "Fill the gap",
	lsn.PhaseTyping:       "Type it",
	lsn.PhaseAssessment:   "Match the picture",
	lsn.PhaseComplete:     "Done",
}

// pictureLabel turns an asset name like "good-morning.png" into a
// caption for the terminal.
func pictureLabel(name string) string {
	if name == "" {
		return ""
	}
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return "🖼  " + base
}

// promptText is the question shown for the current drill item.
func promptText(ev *drill.Evaluator) string {
	switch it := ev.Current().(type) {
	case drill.Choice:
		if ev.Mode() == drill.ModePictureMatch {
			return pictureLabel(it.Picture)
		}
		return it.Prompt
	case drill.Typed:
		return it.Prompt
	}
	return ""
}

func (s *LessonScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	cur, total := s.sess.Step()
	bar := components.NewProgressBar(phaseTitles[s.sess.Phase()], cur, total, cw)
	sections = append(sections, bar.View())

	if !layout.IsCompact(width, height+6) {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, components.Mascot(s.mood())))
	}

	switch s.sess.Phase() {
	case lsn.PhasePresentation:
		sections = append(sections, s.renderPresentation(cw))
	case lsn.PhaseDialogue:
		sections = append(sections, s.renderDialogue(cw))
	case lsn.PhaseComplete:
		sections = append(sections, s.renderComplete(cw))
	default:
		sections = append(sections, s.renderDrill(cw))
	}

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (s *LessonScreen) renderPresentation(cw int) string {
	p, _ := s.sess.Presentation()
	var b strings.Builder
	b.WriteString(theme.Word.Render(p.Word))
	b.WriteString("\n" + theme.Hint.Render(pictureLabel(p.Picture)) + "\n\n")
	b.WriteString(theme.Body.Render(p.Grammar))
	if p.CulturalNote != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Cyan).Render("💡 "+p.CulturalNote))
	}
	b.WriteString("\n\n" + theme.Hint.Render(fmt.Sprintf("card %d of %d", s.sess.Index()+1, s.sess.PhaseLen())))
	return components.Card(b.String(), cw, theme.Gold)
}

func (s *LessonScreen) renderDialogue(cw int) string {
	d, _ := s.sess.Dialogue()
	a := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("A: ")
	bb := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("B: ")

	var b strings.Builder
	b.WriteString(a + theme.Word.Render(d.Speaker1) + "\n\n")
	b.WriteString(bb + theme.Word.Render(d.Speaker2))
	if len(d.PictureContext) > 0 {
		b.WriteString("\n\n" + theme.Hint.Render(pictureLabel(d.PictureContext[0])))
	}
	return components.Card(b.String(), cw, theme.Secondary)
}

func (s *LessonScreen) renderDrill(cw int) string {
	ev := s.sess.Drill()
	var b strings.Builder

	switch it := ev.Current().(type) {
	case drill.Choice:
		switch ev.Mode() {
		case drill.ModeFillInGap:
			gap := "____"
			if sel, ok := ev.Selected(); ok {
				gap = sel
			}
			b.WriteString(theme.Body.Render(curriculum.FillInGap{Sentence: it.Prompt}.Fill("[" + gap + "]")))
		case drill.ModePictureMatch:
			b.WriteString(theme.Body.Render("Which one matches this picture?") + "\n")
			b.WriteString(theme.Word.Render(pictureLabel(it.Picture)))
		default:
			b.WriteString(theme.Body.Render("What does this mean?") + "\n")
			b.WriteString(theme.Word.Render(it.Prompt))
			if it.Picture != "" {
				b.WriteString("\n" + theme.Hint.Render(pictureLabel(it.Picture)))
			}
		}
		b.WriteString("\n\n" + s.mc.View())
	case drill.Typed:
		b.WriteString(theme.Body.Render(it.Prompt))
		if it.Picture != "" {
			b.WriteString("\n" + theme.Hint.Render(pictureLabel(it.Picture)))
		}
		b.WriteString("\n\n" + s.input.View())
	}

	if banner := s.banner(ev); banner != "" {
		b.WriteString("\n" + banner)
	}
	if exp := s.renderExplanation(); exp != "" {
		b.WriteString("\n\n" + exp)
	}
	return components.Card(b.String(), cw, nil)
}

func (s *LessonScreen) banner(ev *drill.Evaluator) string {
	switch ev.Status() {
	case drill.StatusTryAgain:
		left := ev.Threshold() - ev.Attempts()
		return theme.Incorrect.Render(fmt.Sprintf("Not quite. %d more %s.", left, plural(left, "try", "tries")))
	case drill.StatusFailed:
		answer, _ := ev.Reveal()
		msg := theme.Incorrect.Render("The answer is: ") + theme.Word.Render(answer)
		if s.tutor.Available() && s.explanation == nil && !s.explaining {
			msg += "\n" + theme.Hint.Render("Press ? to ask the tutor why.")
		}
		return msg
	case drill.StatusCorrect:
		if ev.Attempts() == 0 {
			return theme.Correct.Render("Correct!")
		}
		return theme.Correct.Render("Correct on retry. Half credit.")
	}
	return ""
}

func (s *LessonScreen) renderExplanation() string {
	switch {
	case s.explaining:
		return theme.Hint.Render("Asking the tutor...")
	case s.explainErr != "":
		return theme.Incorrect.Render("Tutor unavailable: " + s.explainErr)
	case s.explanation != nil:
		out := theme.Body.Render(s.explanation.Explanation)
		if s.explanation.MemoryTip != "" {
			out += "\n" + lipgloss.NewStyle().Foreground(theme.Cyan).Render("💡 "+s.explanation.MemoryTip)
		}
		return out
	}
	return ""
}

func (s *LessonScreen) renderComplete(cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("Lesson complete!"))
	b.WriteString("\n\n")

	score, c, _ := s.sess.Result()
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score: %d%%", score)))
	if s.result != nil {
		b.WriteString("\n" + theme.Word.Render(fmt.Sprintf("+%d XP", s.result.XPDelta)))
		b.WriteString("   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("🔥 %d %s", c.Account.Streak, plural(c.Account.Streak, "day", "days"))))
		if c.Unlocked {
			b.WriteString("\n\n" + theme.Correct.Render("Next lesson unlocked!"))
		}
	}

	scores := s.sess.Scores()
	b.WriteString("\n\n")
	for _, p := range lsn.ScoredPhases {
		if v, ok := scores[p]; ok {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("%-18s %3d%%", phaseTitles[p], v)) + "\n")
		}
	}
	return components.Card(b.String(), cw, theme.Gold)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
