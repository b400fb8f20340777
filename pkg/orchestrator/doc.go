// Package orchestrator runs the generation pipeline: class descriptor,
// metadata builder, model descriptor, dialect renderer, sink. The generation
// cache short-circuits the build and render stages. An Orchestrator is safe
// for concurrent use once constructed.
package orchestrator
