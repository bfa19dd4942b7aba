// Package llm extracts transactions from free-form financial text by
// prompting language model providers. It supports OpenAI, Anthropic, and
// Gemini, with retry logic, rate limiting, JSON recovery, and schema
// validation of model output.
package llm
