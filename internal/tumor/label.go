// Package tumor defines the label set shared by the classifier and the
// report generator, plus the static medical reference data keyed by label.
package tumor

import "fmt"

// Label identifies one of the four classes the classifier distinguishes.
type Label int

const (
	Glioma Label = iota
	Meningioma
	NoTumor
	Pituitary
)

// ClassNames returns the labels in the order the classification model emits
// its probability vector. Index i of the model output corresponds to
// ClassNames()[i].
func ClassNames() []Label {
	return []Label{Glioma, Meningioma, NoTumor, Pituitary}
}

func (l Label) String() string {
	switch l {
	case Glioma:
		return "Glioma Tumor"
	case Meningioma:
		return "Meningioma Tumor"
	case NoTumor:
		return "No Tumor"
	case Pituitary:
		return "Pituitary Tumor"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// Positive reports whether the label indicates a detected tumor.
func (l Label) Positive() bool {
	return l != NoTumor
}

// ParseLabel maps a class-name string back to its Label.
func ParseLabel(s string) (Label, error) {
	for _, l := range ClassNames() {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown tumor label %q", s)
}

// LabelsFromClasses maps a model artifact's declared class names onto the
// label enum, preserving their order. It fails when the artifact names a
// class this system has no reference data for.
func LabelsFromClasses(classes []string) ([]Label, error) {
	labels := make([]Label, len(classes))
	for i, name := range classes {
		l, err := ParseLabel(name)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}
