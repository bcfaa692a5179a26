package loader

// designSchema constrains the shape of a design bundle. Annotation records
// are open structs beyond their `class`; their members are free-form
// attribute trees converted by attr.go.
const designSchema = `
#Loc: {
	file: string
	line: int & >=0
	col:  int & >=0
}

#Info: #Loc | [...#Loc]

#Annotation: {
	class: string
	...
}

#Component: {
	kind: "instance" | "wire" | "reg" | "regreset" | "node"
	name: string
	info?: #Info
	annotations?: [...#Annotation]
}

#Module: {
	name: string
	info?: #Info
	body?: [...#Component]
	annotations?: [...#Annotation]
}

#Anchor: {
	name:     string
	modpath:  [...string]
	namepath: [...string]
}

circuit: {
	name: string
	info?: #Info
	annotations?: [...#Annotation]
	modules?: [...#Module]
	anchors?: [...#Anchor]
}
`
