// Command sakhi is the reference terminal client for the voice advisory
// core. It renders the conversation, surfaces consent prompts, and exposes
// mic and voice toggles; sending is disabled while a turn is processing.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	conversation "github.com/krishisetu/sakhi-core/core"
	"github.com/krishisetu/sakhi-core/core/audio/miniaudio"
	"github.com/krishisetu/sakhi-core/core/processors/advisory"
	recognitiondeepgram "github.com/krishisetu/sakhi-core/core/recognition/deepgram"
	synthesisdeepgram "github.com/krishisetu/sakhi-core/core/synthesis/deepgram"
)

const greeting = "Namaste! I am Sakhi, your farming companion. Ask me about crops, weather, or market prices."

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processor, err := advisory.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "set SAKHI_ADVISORY_URL to the advisory backend:", err)
		os.Exit(1)
	}

	orchestratorOptions := []conversation.OrchestratorOption{
		conversation.WithMessageProcessor(processor),
		conversation.WithSpeechRecognizer(recognitiondeepgram.NewTranscriptionClient()),
		conversation.WithSpeechSynthesizer(synthesisdeepgram.NewSpeechClient()),
		conversation.WithDeviceVoices(synthesisdeepgram.DeviceVoices()),
		conversation.WithCaptureLanguage("en-IN"),
		conversation.WithGreeting(greeting),
	}

	audioClient, err := miniaudio.NewClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "continuing without audio devices:", err)
	} else {
		defer audioClient.Close()
		orchestratorOptions = append(orchestratorOptions,
			conversation.WithAudioInput(audioClient),
			conversation.WithAudioOutput(audioClient),
		)
	}

	orchestrator := conversation.NewOrchestrator(orchestratorOptions...)
	defer orchestrator.Close()

	events := make(chan tea.Msg, 64)
	orchestrator.Orchestrate(ctx,
		conversation.WithMessageCallback(func(message conversation.Message) {
			events <- messageAppended(message)
		}),
		conversation.WithInterimTranscriptionCallback(func(transcript string) {
			events <- interimChanged(transcript)
		}),
		conversation.WithListeningChangedCallback(func(listening bool) {
			events <- listeningChanged(listening)
		}),
		conversation.WithSpeakingChangedCallback(func(speaking bool) {
			events <- speakingChanged(speaking)
		}),
		conversation.WithVoiceChangedCallback(func(enabled bool) {
			events <- voiceChanged(enabled)
		}),
		conversation.WithProcessingChangedCallback(func(processing bool) {
			events <- processingChanged(processing)
		}),
		conversation.WithConsentRequestedCallback(func(request conversation.ConsentRequest) {
			events <- consentRequested(request)
		}),
		conversation.WithAdvisoryCallback(func(advisory conversation.Advisory) {
			events <- advisoryRaised(advisory)
		}),
	)

	program := tea.NewProgram(newModel(ctx, orchestrator, events), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type (
	messageAppended   conversation.Message
	interimChanged    string
	listeningChanged  bool
	speakingChanged   bool
	voiceChanged      bool
	processingChanged bool
	consentRequested  conversation.ConsentRequest
	advisoryRaised    conversation.Advisory
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	statusOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	statusOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	agentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	interimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	advisoryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	consentStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).Padding(0, 1)
	quickActionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	ctx          context.Context
	orchestrator *conversation.Orchestrator
	events       chan tea.Msg

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	messages   []conversation.Message
	interim    string
	advisory   string
	consent    *conversation.ConsentRequest
	listening  bool
	speaking   bool
	voice      bool
	processing bool

	width  int
	height int
	ready  bool
}

func newModel(ctx context.Context, orchestrator *conversation.Orchestrator, events chan tea.Msg) model {
	input := textinput.New()
	input.Placeholder = "Ask Sakhi..."
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return model{
		ctx:          ctx,
		orchestrator: orchestrator,
		events:       events,
		input:        input,
		spin:         spin,
		messages:     orchestrator.Messages(),
		voice:        orchestrator.IsVoiceEnabled(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spin.Tick, textinput.Blink)
}

func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.input.Width = msg.Width - 4
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+t":
			m.orchestrator.ToggleMic(m.ctx)
			return m, nil
		case "ctrl+o":
			if m.orchestrator.IsVoiceEnabled() {
				m.orchestrator.DisableVoice()
			} else {
				m.orchestrator.EnableVoice()
			}
			return m, nil
		case "enter":
			if m.consent != nil {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.processing {
				return m, nil
			}
			m.input.Reset()
			return m, m.sendCmd(text)
		case "y", "Y":
			if m.consent != nil {
				m.consent = nil
				return m, m.resolveConsentCmd(true)
			}
		case "n", "N":
			if m.consent != nil {
				m.consent = nil
				return m, m.resolveConsentCmd(false)
			}
		}

	case messageAppended:
		m.messages = append(m.messages, conversation.Message(msg))
		m.interim = ""
		m.refreshViewport()
		return m, m.waitForEvent()
	case interimChanged:
		m.interim = string(msg)
		m.refreshViewport()
		return m, m.waitForEvent()
	case listeningChanged:
		m.listening = bool(msg)
		if !m.listening {
			m.interim = ""
			m.refreshViewport()
		}
		return m, m.waitForEvent()
	case speakingChanged:
		m.speaking = bool(msg)
		return m, m.waitForEvent()
	case voiceChanged:
		m.voice = bool(msg)
		return m, m.waitForEvent()
	case processingChanged:
		m.processing = bool(msg)
		return m, m.waitForEvent()
	case consentRequested:
		request := conversation.ConsentRequest(msg)
		m.consent = &request
		return m, m.waitForEvent()
	case advisoryRaised:
		m.advisory = conversation.Advisory(msg).Text
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		// Errors surface through the advisory callback.
		_ = m.orchestrator.Send(m.ctx, text)
		return nil
	}
}

func (m model) resolveConsentCmd(accepted bool) tea.Cmd {
	return func() tea.Msg {
		_ = m.orchestrator.ResolveConsent(m.ctx, accepted)
		return nil
	}
}

func (m *model) refreshViewport() {
	if !m.ready {
		return
	}

	var content strings.Builder
	for _, message := range m.messages {
		label := agentStyle.Render("Sakhi")
		if message.Sender == conversation.SenderUser {
			label = userStyle.Render("You")
		}
		content.WriteString(label + "\n")
		content.WriteString(wordwrap.String(message.Text, m.viewport.Width-2) + "\n")
		for _, action := range message.QuickActions {
			content.WriteString(quickActionStyle.Render("  • "+action) + "\n")
		}
		content.WriteString("\n")
	}
	if m.interim != "" {
		content.WriteString(interimStyle.Render(wordwrap.String(m.interim+" …", m.viewport.Width-2)) + "\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

func (m model) View() string {
	if !m.ready {
		return "loading..."
	}

	status := []string{}
	status = append(status, statusBadge("mic", m.listening))
	status = append(status, statusBadge("voice", m.voice))
	if m.speaking {
		status = append(status, statusOnStyle.Render("speaking"))
	}
	header := titleStyle.Render("Sakhi") + "  " + strings.Join(status, "  ")

	inputLine := "> " + m.input.View()
	if m.processing {
		inputLine = m.spin.View() + " thinking..."
	}

	lines := []string{header, m.viewport.View()}
	if m.advisory != "" {
		lines = append(lines, advisoryStyle.Render(wordwrap.String(m.advisory, m.width-2)))
	}
	if m.consent != nil {
		prompt := fmt.Sprintf("Sakhi asks your consent to %s", m.consent.Action)
		if m.consent.Detail != "" {
			prompt += "\n" + m.consent.Detail
		}
		prompt += "\n[y] allow   [n] deny"
		lines = append(lines, consentStyle.Render(wordwrap.String(prompt, m.width-6)))
	}
	lines = append(lines,
		inputLine,
		helpStyle.Render("enter send · ctrl+t mic · ctrl+o voice · esc quit"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statusBadge(name string, on bool) string {
	if on {
		return statusOnStyle.Render("● " + name)
	}
	return statusOffStyle.Render("○ " + name)
}
