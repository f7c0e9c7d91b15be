// Package providers implements the Classifier interface on top of an LLM
// chat-completion API.
//
// The only provider is OpenAI. A classification never returns an error: API
// error payloads, unexpected response shapes and transport failures are all
// converted into a readable error string that takes the place of the model's
// answer, and are logged through the injected zap logger.
//
// The HTTP client is a struct field so that tests can point it at a local
// httptest server without making live API requests.
package providers
