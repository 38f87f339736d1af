package icons

// Icon is the display glyph and short name for a sound label.
type Icon struct {
	Glyph string `json:"glyph"`
	Name  string `json:"name"`
}

type entry struct {
	key  string
	icon Icon
}

// Unknown is returned when no entry matches a label.
var Unknown = Icon{Glyph: "🔊", Name: "Sound"}

// builtin is checked in order; the order decides substring ties.
var builtin = []entry{
	{"chicken", Icon{"🐔", "Chicken"}},
	{"rooster", Icon{"🐓", "Rooster"}},
	{"dog", Icon{"🐕", "Dog"}},
	{"cat", Icon{"🐱", "Cat"}},
	{"bird", Icon{"🐦", "Bird"}},
	{"fowl", Icon{"🐔", "Fowl"}},
	{"cluck", Icon{"🐔", "Cluck"}},

	{"car", Icon{"🚗", "Car"}},
	{"truck", Icon{"🚚", "Truck"}},
	{"motorcycle", Icon{"🏍️", "Motorcycle"}},
	{"train", Icon{"🚂", "Train"}},
	{"airplane", Icon{"✈️", "Airplane"}},
	{"helicopter", Icon{"🚁", "Helicopter"}},

	{"piano", Icon{"🎹", "Piano"}},
	{"guitar", Icon{"🎸", "Guitar"}},
	{"drum", Icon{"🥁", "Drum"}},
	{"violin", Icon{"🎻", "Violin"}},
	{"trumpet", Icon{"🎺", "Trumpet"}},

	{"rain", Icon{"🌧️", "Rain"}},
	{"wind", Icon{"💨", "Wind"}},
	{"thunder", Icon{"⛈️", "Thunder"}},
	{"water", Icon{"💧", "Water"}},

	{"speech", Icon{"🗣️", "Speech"}},
	{"singing", Icon{"🎤", "Singing"}},
	{"laugh", Icon{"😄", "Laugh"}},
	{"cry", Icon{"😢", "Cry"}},
	{"applause", Icon{"👏", "Applause"}},

	{"alarm", Icon{"⏰", "Alarm"}},
	{"siren", Icon{"🚨", "Siren"}},
	{"phone", Icon{"📞", "Phone"}},
	{"computer", Icon{"💻", "Computer"}},
}
