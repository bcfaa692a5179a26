package ir

// Annotation classes understood by the emission stage. The class names match
// the JSON-shaped annotation format of the SiFive object model toolchain.
const (
	// OMIRAnnoClass carries a `nodes` array of OMNode records on the circuit.
	OMIRAnnoClass = "freechips.rocketchip.objectmodel.OMIRAnnotation"
	// OMIRFileAnnoClass carries a `filename` override on the circuit.
	OMIRFileAnnoClass = "freechips.rocketchip.objectmodel.OMIRFileAnnotation"
	// OMIRTrackerAnnoClass marks one operation as a live OMIR target,
	// carrying an integer `id` and an optional `circt.nonlocal` symbol.
	OMIRTrackerAnnoClass = "freechips.rocketchip.objectmodel.OMIRTracker"
	// DontTouchAnnoClass protects a named entity from elimination and
	// renaming by later stages.
	DontTouchAnnoClass = "firrtl.transforms.DontTouchAnnotation"
)

// AnnoClassKey is the dictionary entry holding an annotation's class.
const AnnoClassKey = "class"

// AnnoClass returns the annotation's class name, or "".
func AnnoClass(anno DictAttr) string {
	s, _ := anno.GetString(AnnoClassKey)
	return s
}

// RemoveAnnotations removes every annotation on o for which filter returns
// true. The filter may record information or signal errors through captured
// state; removal happens regardless of outcome.
func (o *Op) RemoveAnnotations(filter func(anno DictAttr) bool) {
	kept := o.Annos[:0]
	for _, anno := range o.Annos {
		if !filter(anno) {
			kept = append(kept, anno)
		}
	}
	o.Annos = kept
}

// HasAnnotation reports whether o carries an annotation of the given class.
func (o *Op) HasAnnotation(class string) bool {
	for _, anno := range o.Annos {
		if AnnoClass(anno) == class {
			return true
		}
	}
	return false
}

// AddDontTouch marks o as non-eliminable. Idempotent.
func (o *Op) AddDontTouch() {
	if o.HasAnnotation(DontTouchAnnoClass) {
		return
	}
	o.Annos = append(o.Annos, Dict(E(AnnoClassKey, StringAttr(DontTouchAnnoClass))))
}
