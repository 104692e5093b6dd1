// Package events defines the typed event contract of the voice controller.
//
// Event kinds are grouped by producer-facing namespaces:
//
//   - recognizer.*
//   - utterance.*
//
// Semantics used across the package:
//
//   - Epoch: monotonically increasing identifier of the recognizer run that
//     produced an event. The capture session discards any recognizer event
//     whose epoch does not match its live run.
//   - Token: monotonically increasing identifier of a synthesis utterance.
//     The playback manager discards any utterance event whose token does not
//     match its current utterance.
//   - Interim: provisional, replaceable in-progress transcript guess.
//   - Final: platform-confirmed, immutable transcript text.
//
// recognizer events (raw platform callbacks, epoch-tagged)
//
//   - RecognizerStarted (recognizer.started): a recognizer run began
//     delivering results.
//   - RecognizerResultInterim (recognizer.result_interim): replaceable
//     interim transcript guess.
//   - RecognizerResultFinal (recognizer.result_final): confirmed transcript
//     segment.
//   - RecognizerError (recognizer.error): platform error with its raw code.
//   - RecognizerEnded (recognizer.ended): the recognizer run stopped
//     delivering results.
//
// utterance events (playback, token-tagged)
//
//   - UtteranceStarted (utterance.started): synthesis playback began.
//   - UtteranceEnded (utterance.ended): synthesis playback completed.
//   - UtteranceError (utterance.error): synthesis playback failed.
package events
