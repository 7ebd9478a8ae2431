package rubric

import "strconv"

// Item is one evaluable statement of the interview rubric.
type Item struct {
	ID         string `json:"id"` // e.g. "A7"
	CategoryID string `json:"category_id"`
	Statement  string `json:"statement"`
}

// Category groups the 10 items scored together in one generation call.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// The catalog is fixed at process start: 5 categories, 10 items each.
// Statements are the survey wording shown to the scoring model verbatim.
var catalog = []Category{
	{
		ID:   "A",
		Name: "仕事への意味・充実感",
		Items: items("A",
			"自分の仕事は、社会に何らかの形で役立っていると感じる。",
			"仕事を通じて、自分が成長していると感じることがある。",
			"毎日の仕事に、やりがいを見出せていると思う。",
			"自分が仕事に費やしている時間は、意味のある使い方だと感じる。",
			"仕事の中に、自分が大切にしている価値観と一致する部分があると思う。",
			"職場での経験が、自分という人間を形づくる一部になっていると感じる。",
			"仕事上の小さな達成でも、自分にとって喜びになることがある。",
			"自分が取り組んでいる仕事には、続けるだけの意味があると感じる。",
			"働くことは、単なる収入を得る手段以上の何かだと思う。",
			"仕事を通じて、自分の存在意義を感じる瞬間がある。",
		),
	},
	{
		ID:   "B",
		Name: "人間関係・つながりの感覚",
		Items: items("B",
			"自分の周りには、困ったときに支えてくれると感じる人がいる。",
			"誰かの役に立てたと感じるとき、生きていてよかったと思う。",
			"人との関わりの中に、自分の生きがいの一部があると感じる。",
			"自分のことを理解してくれていると感じる人が、身の回りにいる。",
			"誰かに感謝されたとき、自分の存在に意味があると感じる。",
			"他者とつながっているという感覚が、自分の心の支えになっている。",
			"自分が関わることで、他者の生活や気持ちが少しでもよくなっていると感じることがある。",
			"孤独を感じることなく日々を過ごせていると思う。",
			"自分の存在が、誰かにとってプラスになっていると感じる。",
			"人との関係の中に、人生の喜びを感じることがある。",
		),
	},
	{
		ID:   "C",
		Name: "自己成長・学びへの志向",
		Items: items("C",
			"自分はまだ成長できる余地があると感じている。",
			"新しいことを学ぶことに、意欲を感じることがある。",
			"自分の可能性は、今後も広がっていくと思う。",
			"過去の失敗や困難は、自分を成長させてくれたと感じる。",
			"自分の強みや得意なことを、活かせる場面があると感じる。",
			"日々の経験から、何かしら学び取れることがあると思う。",
			"自分が目指したい姿や、なりたい自分のイメージを持っている。",
			"挑戦することに対して、不安よりも期待の方が大きいと感じることがある。",
			"自分の知識やスキルが高まっていると感じることがある。",
			"努力を続けることに、意味を感じている。",
		),
	},
	{
		ID:   "D",
		Name: "人生全体の意味・目的感",
		Items: items("D",
			"自分の人生には、意味や目的があると感じている。",
			"今の自分の生き方は、自分らしいと感じる。",
			"将来に対して、漠然とでも希望を持てている。",
			"自分が何のために生きているか、感じられることがある。",
			"自分の人生を振り返ったとき、意味のある時間を過ごしてきたと思える。",
			"今この瞬間、生きていることに価値を感じる。",
			"自分の価値観にそった生き方ができていると感じる。",
			"人生において、自分なりの優先順位や軸を持っていると思う。",
			"今後の人生に対して、楽しみにしていることがある。",
			"自分の生き方を、自分自身で選んでいるという感覚がある。",
		),
	},
	{
		ID:   "E",
		Name: "日常の喜び・主観的幸福感",
		Items: items("E",
			"日常の中に、小さな喜びを見つけることができると感じる。",
			"今の自分の生活に、全体として満足感を感じている。",
			"朝目覚めたとき、今日という一日に前向きな気持ちになれることがある。",
			"自分の生活の中に、楽しみにしていることがある。",
			"心が穏やかでいられる時間が、日常の中にあると感じる。",
			"自分の感情や気持ちを、大切にできていると思う。",
			"趣味・関心事・好きなことが、自分の生活を豊かにしていると感じる。",
			"自分が「いい一日だった」と感じる日が、ある程度あると思う。",
			"自分はおおむね幸せな状態にあると感じる。",
			"今の自分の生き方を、肯定的に受け止めている。",
		),
	},
}

func items(categoryID string, statements ...string) []Item {
	result := make([]Item, len(statements))
	for i, statement := range statements {
		result[i] = Item{
			ID:         categoryID + strconv.Itoa(i+1),
			CategoryID: categoryID,
			Statement:  statement,
		}
	}
	return result
}

// Categories returns the catalog in fixed A..E order.
func Categories() []Category {
	return catalog
}

// CategoryByID looks up one category of the catalog.
func CategoryByID(id string) (Category, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// TotalItems is the number of rubric items across all categories.
func TotalItems() int {
	n := 0
	for _, c := range catalog {
		n += len(c.Items)
	}
	return n
}
