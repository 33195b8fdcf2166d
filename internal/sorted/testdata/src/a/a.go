package a

//typesynth:sorted
const (
	Alpha = iota
	Beta
	Gamma
)

//typesynth:sorted
const (
	Red = iota
	Green // want `Green should sort before Red`
	Blue
)

//typesynth:sorted extra args are ignored
const (
	apple = iota
	Banana
	cherry
)

//typesynth:sorted
const (
	_ = iota
	Delta
	Charlie // want `Charlie should sort before Delta`
)

// Not marked, so never checked.
const (
	Zulu = iota
	Yankee
)

//typesynth:sorted
type Color int // want `//typesynth:sorted applies to const blocks, not type declarations`

//typesynth:sorted
func Paint() {} // want `//typesynth:sorted applies to const blocks, not func declarations`

//typesynth:sortedness is a different directive
const (
	Two = iota
	One
)
