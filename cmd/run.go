package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/audio"
	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/config"
	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/gemini"
	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/inject"
	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/internal/rotation"
	"github.com/NoushadBug/stt-typer-enhanced-wayland-supported/pkg/notify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Record until interrupted, then transcribe and type the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// geminiBoundary adapts the Gemini client to the dispatcher's boundary.
type geminiBoundary struct {
	client *gemini.Client
}

func (b geminiBoundary) Transcribe(ctx context.Context, req rotation.Request) (*rotation.Result, error) {
	res, err := b.client.Transcribe(ctx, gemini.Request{
		Audio:     req.Audio,
		MIMEType:  req.MIMEType,
		Model:     req.Model,
		APIKey:    req.APIKey,
		Language:  req.Language,
		Translate: req.Translate,
	})
	if err != nil {
		return nil, err
	}
	return &rotation.Result{Text: res.Text, Language: res.Language}, nil
}

// runSession is one full invocation: record until SIGINT/SIGTERM, then
// transcribe and inject. A failed run ends the invocation; the external
// hotkey wrapper decides whether to re-invoke.
func runSession(ctx context.Context) error {
	notifier := notify.New()

	creds, err := rotation.LoadCredentials("GOOGLE_API_KEY")
	if err != nil {
		notifier.Error("❌ stt-typer", "No API key configured")
		return err
	}
	log.Info().Int("keys", len(creds)).Msg("loaded API credentials")

	if pid := activePID(cfg.Paths.PIDFile); pid != 0 {
		return fmt.Errorf("a recording is already active (pid %d)", pid)
	}
	if err := writePIDFile(cfg.Paths.PIDFile); err != nil {
		return err
	}
	defer removePIDFile(cfg.Paths.PIDFile)

	recorder := audio.New(cfg.Audio, cfg.Paths.TempDir)
	if err := recorder.Start(ctx); err != nil {
		notifier.Error("❌ stt-typer", "Failed to start recording")
		return err
	}
	defer recorder.Cleanup()

	notifier.Info("🎙️ Recording Started", "Speak now...")
	notifier.Play("device-added")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	signal.Stop(stop)

	if err := recorder.Stop(); err != nil {
		return err
	}

	notifier.Info("⏹️ Recording Stopped", "Transcribing...")
	notifier.Play("device-removed")

	audioBytes, err := os.ReadFile(recorder.RecordingPath())
	if err != nil {
		notifier.Error("❌ stt-typer", "No recording captured")
		return fmt.Errorf("failed to read recording: %w", err)
	}

	text, err := transcribe(ctx, creds, audioBytes)
	if err != nil {
		notifier.Error("❌ stt-typer", truncate(err.Error(), 100))
		notifier.Play("dialog-error")
		return err
	}
	if text == "" {
		notifier.Error("❌ stt-typer", "No transcription received")
		return fmt.Errorf("transcription returned empty text")
	}

	if err := buildChain().Inject(text); err != nil {
		notifier.Error("❌ stt-typer", "Typing failed. Check uinput permissions.")
		notifier.Play("dialog-error")
		return err
	}

	notifier.Info("✅ Text Typed", truncate(text, 100))
	notifier.Play("message-new-instant")
	return nil
}

func transcribe(ctx context.Context, creds []*rotation.Credential, audioBytes []byte) (string, error) {
	store := config.NewStateFile(cfg.Paths.StateFile)

	dispatcher, err := rotation.New(
		creds,
		cfg.Transcription.Models,
		geminiBoundary{client: gemini.NewClient()},
		store,
		log.With().Str("component", "rotation").Logger(),
	)
	if err != nil {
		return "", err
	}

	res, err := dispatcher.Transcribe(ctx, audioBytes, "audio/wav",
		cfg.Transcription.Language, *cfg.Transcription.Translate)
	if err != nil {
		return "", err
	}

	if res.Language != "" {
		log.Info().Str("language", res.Language).Msg("detected source language")
	}
	return res.Text, nil
}

func buildChain() *inject.Chain {
	uinput := inject.NewUinput(cfg.Typing.DevicePath,
		time.Duration(cfg.Typing.KeyDelayMs)*time.Millisecond)
	wtype := inject.NewWtype()
	ydotool := inject.NewYdotool()
	clipboard := inject.NewClipboard(uinput, wtype, ydotool)

	return inject.NewChain(
		log.With().Str("component", "inject").Logger(),
		uinput, wtype, ydotool, clipboard,
	)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
