// Package formdef loads declarative form definitions from JSON or YAML. A
// definition lists the fields of a form in render order together with the
// rules bound to each field; the model builder turns it into a FormModel.
// The registration form ships embedded and is returned by Default.
package formdef
