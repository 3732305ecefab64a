// Package main provides the entry point for the groundwork CLI.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/groundworkhq/groundwork/internal/answers"
	"github.com/groundworkhq/groundwork/internal/catalog"
	"github.com/groundworkhq/groundwork/internal/intake"
	"github.com/groundworkhq/groundwork/internal/output"
	"github.com/groundworkhq/groundwork/internal/session"
	"github.com/groundworkhq/groundwork/internal/workspace"
)

// intakeFlags holds the command-line flags for the intake command.
type intakeFlags struct {
	stage  string
	lang   string
	replay string
}

// newIntakeCmd creates the intake command.
func newIntakeCmd() *cobra.Command {
	flags := &intakeFlags{}

	cmd := &cobra.Command{
		Use:   "intake",
		Short: "Answer the questionnaire interactively",
		Long: `Run the guided questionnaire.

Questions are asked one at a time from the active stage. Answers are
validated against the question type and saved immediately, so you can
stop at any point and resume later. Already-answered questions are
never asked again.

During the session these commands are available:
  /back      undo the previous answer
  /skip      defer the current question to the end of the queue
  /restart   discard all answers and start over
  /status    show progress
  /quit      save and exit

Examples:
  groundwork intake                  # Resume where you left off
  groundwork intake --stage deep     # Work on the deep-dive questions
  groundwork intake --lang pt-BR     # Ask questions in Portuguese
  groundwork intake --replay answers.yaml   # Feed answers from a saved answer file
  groundwork intake --replay answers.txt    # Or from plain text, one answer per line`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runIntake(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.stage, "stage", "", "Stage to work on: core, deep, or specialist")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "Prompt language (e.g. en, pt-BR)")
	cmd.Flags().StringVar(&flags.replay, "replay", "", "File to replay non-interactively: a saved answer file, or plain text with one answer per line")
	return cmd
}

// runIntake executes the intake command.
func runIntake(cmd *cobra.Command, flags *intakeFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	sess, err := openSession(printer)
	if err != nil {
		return err
	}

	if flags.lang != "" {
		sess.Orch.State().Meta.Language = flags.lang
	}

	stage := sess.ResumeStage()
	if flags.stage != "" {
		parsed, parseErr := catalog.ParseStage(flags.stage)
		if parseErr != nil {
			userErr := output.NewUserErrorWithCause("invalid stage", parseErr)
			printer.Error(userErr)
			return userErr
		}
		stage = parsed
	}
	sess.Orch.Refresh(stage)

	if flags.replay != "" {
		return runReplay(cmd, printer, sess, flags.replay)
	}
	return runWizard(cmd, printer, sess)
}

// openSession opens the workspace session, mapping absence to a user error.
func openSession(printer *output.Printer) (*session.Session, error) {
	sess, err := session.Open()
	if err != nil {
		var exitErr error
		if errors.Is(err, workspace.ErrNotInitialized) {
			exitErr = output.NewUserErrorWithCause("no groundwork workspace found. Run 'groundwork init' first", err)
		} else {
			exitErr = output.NewIOErrorWithCause("opening workspace", err)
		}
		printer.Error(exitErr)
		return nil, exitErr
	}
	return sess, nil
}

// runWizard drives the interactive question loop.
func runWizard(cmd *cobra.Command, printer *output.Printer, sess *session.Session) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	styles := printer.Style()

	printer.Println()
	printer.Print("%s %s\n", styles.Title.Render("groundwork intake"), styles.Dim.Render("· stage: "+string(sess.Orch.Stage())))
	printer.Print("%s\n", styles.Dim.Render("Type /back, /skip, /restart, /status or /quit at any prompt."))

	for {
		q, err := nextQuestion(sess)
		if errors.Is(err, intake.ErrExhausted) {
			return finishIntake(printer, sess)
		}
		if err != nil {
			ioErr := output.NewIOErrorWithCause("fetching next question", err)
			printer.Error(ioErr)
			return ioErr
		}

		printQuestion(printer, sess, q)

		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			ioErr := output.NewIOErrorWithCause("reading answer", readErr)
			printer.Error(ioErr)
			return ioErr
		}
		input := strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(strings.TrimSpace(input), "/") {
			quit, slashErr := handleSlashCommand(printer, sess, strings.TrimSpace(input))
			if slashErr != nil {
				return slashErr
			}
			if quit {
				return nil
			}
			if readErr == io.EOF {
				return nil
			}
			continue
		}

		result, advErr := sess.Orch.Advance(input)
		if advErr != nil {
			var valErr *intake.ValidationError
			if errors.As(advErr, &valErr) {
				printer.Print("%s\n", styles.Error.Render(valErr.Message))
				if readErr == io.EOF {
					return output.NewUserError(valErr.Message)
				}
				continue
			}
			ioErr := output.NewIOErrorWithCause("saving answer", advErr)
			printer.Error(ioErr)
			return ioErr
		}

		if result.Warning != "" {
			printer.Warn("%s", result.Warning)
		}

		if rebuildErr := rebuildProfile(printer, sess); rebuildErr != nil {
			return rebuildErr
		}

		if readErr == io.EOF {
			return nil
		}
	}
}

// nextQuestion pops the next queued question. When the queue drains it
// re-runs guard evaluation once before reporting exhaustion, so sections
// unlocked by answers given earlier in the session still get asked.
func nextQuestion(sess *session.Session) (*catalog.Question, error) {
	q, err := sess.Orch.Next()
	if errors.Is(err, intake.ErrExhausted) {
		sess.Orch.Refresh(sess.Orch.Stage())
		return sess.Orch.Next()
	}
	return q, err
}

// runReplay feeds answers from a file instead of a terminal. A saved
// answer file (the meta/answers document written by the store) is matched
// to queued questions by id; anything else is treated as plain text with
// one answer per line, in queue order.
func runReplay(cmd *cobra.Command, printer *output.Printer, sess *session.Session, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		ioErr := output.NewIOErrorWithCause("opening replay file", err)
		printer.Error(ioErr)
		return ioErr
	}

	if saved := parseAnswerFile(data); saved != nil {
		return replayState(printer, sess, saved)
	}
	return replayLines(printer, sess, data)
}

// parseAnswerFile recognizes a saved answer document. Line-based replay
// files are plain scalars to the YAML parser and fall through to nil.
func parseAnswerFile(data []byte) *answers.State {
	var saved answers.State
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return nil
	}
	if len(saved.Answers) == 0 {
		return nil
	}
	return &saved
}

// replayState answers queued questions from a saved answer document,
// matching by question id. Questions the document does not cover are
// left queued.
func replayState(printer *output.Printer, sess *session.Session, saved *answers.State) error {
	answered := 0
	misses := 0

	for {
		q, nextErr := nextQuestion(sess)
		if errors.Is(nextErr, intake.ErrExhausted) {
			break
		}
		if nextErr != nil {
			ioErr := output.NewIOErrorWithCause("fetching next question", nextErr)
			printer.Error(ioErr)
			return ioErr
		}

		val, ok := saved.Answers[q.ID]
		if !ok {
			if misses >= len(sess.Orch.QueueIDs()) {
				break
			}
			if skipErr := sess.Orch.Skip(); skipErr != nil {
				break
			}
			misses++
			continue
		}

		result, advErr := sess.Orch.Advance(val.String())
		if advErr != nil {
			userErr := output.NewUserErrorWithCause(
				fmt.Sprintf("recorded answer for question %s rejected", q.ID), advErr)
			printer.Error(userErr)
			return userErr
		}
		if result.Warning != "" {
			printer.Warn("question %s: %s", q.ID, result.Warning)
		}
		answered++
		misses = 0
	}

	return finishReplay(printer, sess, answered)
}

// replayLines answers queued questions from plain text, one line each.
// Slash commands are not interpreted; every line is an answer.
func replayLines(printer *output.Printer, sess *session.Session, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	answered := 0

	for scanner.Scan() {
		q, nextErr := nextQuestion(sess)
		if errors.Is(nextErr, intake.ErrExhausted) {
			break
		}
		if nextErr != nil {
			ioErr := output.NewIOErrorWithCause("fetching next question", nextErr)
			printer.Error(ioErr)
			return ioErr
		}

		input := strings.TrimRight(scanner.Text(), "\r")
		result, advErr := sess.Orch.Advance(input)
		if advErr != nil {
			userErr := output.NewUserErrorWithCause(
				fmt.Sprintf("replay line %d (question %s) rejected", answered+1, q.ID), advErr)
			printer.Error(userErr)
			return userErr
		}
		if result.Warning != "" {
			printer.Warn("question %s: %s", q.ID, result.Warning)
		}
		answered++
	}
	if err := scanner.Err(); err != nil {
		ioErr := output.NewIOErrorWithCause("reading replay file", err)
		printer.Error(ioErr)
		return ioErr
	}

	return finishReplay(printer, sess, answered)
}

// finishReplay re-projects the profile and prints the replay summary.
func finishReplay(printer *output.Printer, sess *session.Session, answered int) error {
	if err := rebuildProfile(printer, sess); err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"answered":  answered,
			"stage":     string(sess.Orch.Stage()),
			"remaining": len(sess.Orch.QueueIDs()),
		})
	}
	printer.Print("Recorded %d answers. %d questions remaining in stage %s.\n",
		answered, len(sess.Orch.QueueIDs()), sess.Orch.Stage())
	return nil
}

// printQuestion renders one question with its options and required marker.
func printQuestion(printer *output.Printer, sess *session.Session, q *catalog.Question) {
	styles := printer.Style()
	lang := sess.Orch.Language()
	prompt := q.Prompt(lang, sess.Catalog.Language())

	printer.Println()
	if q.Required {
		printer.Print("%s %s\n", styles.Question.Render(prompt), styles.Dim.Render("(required)"))
	} else {
		printer.Print("%s\n", styles.Question.Render(prompt))
	}

	for idx, opt := range q.Options {
		printer.Print("  %s %s\n", styles.Dim.Render(fmt.Sprintf("%d.", idx+1)), opt.Label(lang))
	}

	switch q.Type {
	case catalog.TypeMultiChoice:
		printer.Print("%s", styles.Dim.Render("(comma-separated) "))
	case catalog.TypeConfirm:
		printer.Print("%s", styles.Dim.Render("(Y/n) "))
	default:
	}
	printer.Print("> ")
}

// handleSlashCommand executes an in-session command. The bool result is
// true when the wizard should exit.
func handleSlashCommand(printer *output.Printer, sess *session.Session, command string) (bool, error) {
	styles := printer.Style()

	switch strings.ToLower(command) {
	case "/quit", "/q":
		printer.Print("%s\n", styles.Dim.Render("Progress saved."))
		return true, nil

	case "/back":
		id, err := sess.Orch.GoBack()
		if errors.Is(err, intake.ErrNoPreviousQuestion) {
			printer.Warn("nothing to go back to")
			return false, nil
		}
		if err != nil {
			ioErr := output.NewIOErrorWithCause("undoing answer", err)
			printer.Error(ioErr)
			return false, ioErr
		}
		sess.Orch.Refresh(sess.Orch.Stage())
		printer.Print("%s\n", styles.Dim.Render("Removed answer for "+id+"."))
		return false, rebuildProfile(printer, sess)

	case "/skip":
		if err := sess.Orch.Skip(); err != nil {
			printer.Warn("nothing to skip")
		}
		return false, nil

	case "/restart":
		if err := sess.Orch.Restart(); err != nil {
			ioErr := output.NewIOErrorWithCause("restarting", err)
			printer.Error(ioErr)
			return false, ioErr
		}
		sess.Orch.Refresh(catalog.StageCore)
		printer.Print("%s\n", styles.Dim.Render("All answers discarded. Starting over."))
		return false, rebuildProfile(printer, sess)

	case "/status":
		printer.Print("stage: %s · answered: %d · remaining: %d\n",
			sess.Orch.Stage(), len(sess.Orch.State().Answers), len(sess.Orch.QueueIDs()))
		return false, nil

	default:
		printer.Warn("unknown command %s", command)
		return false, nil
	}
}

// finishIntake prints the end-of-stage summary.
func finishIntake(printer *output.Printer, sess *session.Session) error {
	styles := printer.Style()

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"stage":         string(sess.Orch.Stage()),
			"answered":      len(sess.Orch.State().Answers),
			"core_complete": sess.Orch.CoreComplete(),
			"deep_complete": sess.Orch.DeepComplete(),
		})
	}

	printer.Println()
	printer.Print("%s\n", styles.Success.Render("Stage "+string(sess.Orch.Stage())+" complete."))

	switch {
	case sess.Orch.Stage() == catalog.StageCore:
		printer.Print("Run '%s' or go deeper with '%s'.\n",
			styles.Bold.Render("groundwork generate swot"),
			styles.Bold.Render("groundwork intake --stage deep"))
	case sess.Orch.Stage() == catalog.StageDeep:
		printer.Print("Run '%s' to render documents, or '%s' for SWOT inputs.\n",
			styles.Bold.Render("groundwork generate --all"),
			styles.Bold.Render("groundwork intake --stage specialist"))
	default:
		printer.Print("Run '%s' to render documents.\n", styles.Bold.Render("groundwork generate --all"))
	}
	return nil
}

// rebuildProfile re-projects the profile after an answer mutation.
func rebuildProfile(printer *output.Printer, sess *session.Session) error {
	if _, err := sess.RebuildProfile(); err != nil {
		ioErr := output.NewIOErrorWithCause("rebuilding profile", err)
		printer.Error(ioErr)
		return ioErr
	}
	return nil
}
