// Package survey maps questionnaire question kinds to rendering strategies.
//
// Each [Kind] tag has one [Renderer] registered in a [Registry]. Rendering a
// question is a single map lookup rather than a conditional chain over type
// strings, and [AllKinds] lets tests assert that a registry covers every
// kind the package defines.
//
// Renderers produce a [Widget], a front-end neutral description of the
// control to draw (control type, options, bounds), and validate submitted
// answers for their kind.
//
//	reg := survey.DefaultRegistry()
//	w, err := reg.Render(q)
//	err = reg.Validate(q, answer)
package survey
