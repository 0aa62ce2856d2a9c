package service

// wordlist is the fixed vocabulary for generated mnemonics. 256 short,
// unambiguous English words; the list must never be reordered or
// shrunk, existing passphrases depend on it only textually.
var wordlist = []string{
	"able", "acid", "aged", "also", "area", "army", "away", "baby",
	"back", "ball", "band", "bank", "base", "bath", "bean", "bear",
	"beat", "bell", "belt", "bend", "best", "bird", "blue", "boat",
	"body", "bone", "book", "born", "both", "bowl", "bulk", "burn",
	"bush", "busy", "cake", "calm", "camp", "card", "care", "cart",
	"case", "cash", "cast", "cave", "cell", "chat", "chip", "city",
	"clay", "club", "coal", "coat", "code", "coin", "cold", "come",
	"cook", "cool", "cope", "copy", "core", "corn", "cost", "crew",
	"crop", "dark", "data", "dawn", "days", "dead", "deal", "dear",
	"debt", "deep", "deer", "desk", "dial", "dish", "dock", "door",
	"dose", "down", "draw", "drop", "drum", "dual", "dust", "duty",
	"each", "earn", "ease", "east", "easy", "edge", "face", "fact",
	"fair", "fall", "farm", "fast", "fate", "feed", "feel", "film",
	"find", "fine", "fire", "firm", "fish", "five", "flat", "flow",
	"folk", "food", "foot", "fork", "form", "fort", "four", "free",
	"frog", "fuel", "full", "fund", "gain", "game", "gate", "gear",
	"gift", "girl", "give", "glad", "goal", "goat", "gold", "golf",
	"good", "gray", "grew", "grid", "grow", "gulf", "hair", "half",
	"hall", "hand", "hang", "hard", "harm", "hawk", "head", "heat",
	"herb", "hero", "high", "hill", "hold", "holy", "home", "hope",
	"horn", "hour", "huge", "hunt", "idea", "inch", "iron", "item",
	"jade", "join", "jump", "june", "jury", "just", "keen", "keep",
	"kind", "king", "kite", "knee", "know", "lack", "lake", "lamb",
	"land", "lane", "last", "late", "lead", "leaf", "lean", "left",
	"lens", "life", "lift", "like", "lime", "line", "link", "lion",
	"list", "live", "load", "loan", "lock", "long", "loop", "lord",
	"loss", "loud", "love", "luck", "made", "mail", "main", "make",
	"many", "mark", "mask", "mass", "mate", "meal", "mean", "meat",
	"mild", "mile", "milk", "mill", "mind", "mine", "mint", "miss",
	"mode", "moon", "more", "moss", "most", "move", "much", "music",
	"name", "navy", "near", "neat", "neck", "need", "nest", "news",
	"nine", "node", "none", "noon", "north", "nose", "note", "oak",
}
