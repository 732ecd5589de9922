// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - VectorStore: Vector persistence and similarity search
//   - RecordManager: Tracks which chunk IDs are currently indexed
//   - EmbeddingService: Generates vector embeddings
//   - ConfigStore: Application configuration persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, ask/summarise is disabled.
//   - TextExtractor: PDF text extraction. Without it, only plain text is accepted.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
