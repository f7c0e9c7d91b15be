// Tonecheck asks an LLM whether task comments are positive assessments.
//
// It reads clients, tasks and comments from the task-tracker backend, sends
// every comment of the first client's tasks to the chat-completion API
// concurrently, and prints the answers in the order the comments were
// collected.
//
// Usage:
//
//	tonecheck                         # analyze with defaults (.env supplies OPENAI_TOKEN)
//	tonecheck --search acme --format json
//	tonecheck config show             # effective configuration, token masked
//	tonecheck version
package main
