// Package agent contains the agent scaffold at the heart of agentkit. The
// package focuses on three concerns:
//
//  1. Shared state plumbing (BaseAgent): tool registration and the bounded
//     interaction memory every agent carries
//  2. The Agent contract: one required operation (Execute) that concrete
//     agents must supply on top of the embedded base
//  3. A model-centric tool-calling agent (ModelAgent)
//
// Design principles:
//   - Minimal hidden global state: configuration is injected at construction
//   - Permissive boundaries: tool registration and memory appends never fail,
//     even for nil values; validation of tool/record shape is out of scope
//   - Extensibility: embed BaseAgent; only implement Execute plus any custom API
//
// Execution Model:
//   - Execute receives a query and optional context data and returns a result
//     map containing at least a "response" entry
//   - Execute never mutates memory; callers decide what to record via AddToMemory
package agent
