// Package contract declares the input and output shapes of API operations.
//
// A Contract is built once when a resource module is composed and is never
// mutated afterwards. The same contract drives request validation, response
// dispatch and the generated OpenAPI document, so the three cannot disagree.
package contract
