package deck

import (
	"math/rand"

	"github.com/google/uuid"
)

// Suit 花色（🃏 为王牌专用）
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Clubs    Suit = "♣"
	Diamonds Suit = "♦"
	Joker    Suit = "🃏"
)

// Rank 点数；J/Q/K 触发角色，7/8/小王 可留在手牌
type Rank string

const (
	RankSmallJoker Rank = "小王"
	RankBigJoker   Rank = "大王"
)

var suits = []Suit{Spades, Hearts, Clubs, Diamonds}

var ranks = []Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// holdable 留牌点数集合
var holdable = map[Rank]struct{}{
	"7":            {},
	"8":            {},
	RankSmallJoker: {},
}

type Color string

const (
	Black Color = "black"
	Red   Color = "red"
)

// ColorOf 由花色决定颜色；王牌按大小王分色
func ColorOf(s Suit, r Rank) Color {
	if s == Joker {
		if r == RankBigJoker {
			return Red
		}
		return Black
	}
	if s == Hearts || s == Diamonds {
		return Red
	}
	return Black
}

// Card 不可变牌面。两张牌只按 ID 判等，同点同色的重复牌 ID 不同。
type Card struct {
	Suit  Suit   `json:"suit"`
	Rank  Rank   `json:"rank"`
	Color Color  `json:"color"`
	ID    string `json:"id"`
}

func (c Card) String() string {
	return string(c.Suit) + string(c.Rank)
}

// Holdable 抽到后是否存入手牌（7/8/小王）
func (c Card) Holdable() bool {
	_, ok := holdable[c.Rank]
	return ok
}

// Factory 只负责造牌与洗牌（无规则判断）
type Factory struct {
	rnd *rand.Rand
}

func NewFactory(seed int64) *Factory {
	return &Factory{rnd: rand.New(rand.NewSource(seed))}
}

// NewDeck 生成一副 54 张的新牌并洗匀：
// 4 花色 × 13 点数 + 大小王，每张分配独立 ID。
func (f *Factory) NewDeck() []Card {
	deck := make([]Card, 0, 54)
	for _, s := range suits {
		for _, r := range ranks {
			deck = append(deck, Card{
				Suit:  s,
				Rank:  r,
				Color: ColorOf(s, r),
				ID:    uuid.NewString(),
			})
		}
	}
	for _, r := range []Rank{RankSmallJoker, RankBigJoker} {
		deck = append(deck, Card{
			Suit:  Joker,
			Rank:  r,
			Color: ColorOf(Joker, r),
			ID:    uuid.NewString(),
		})
	}
	f.shuffle(deck)
	return deck
}

// Fisher–Yates，从尾向头，j 均匀取 [0,i]，保证每种排列等概率
func (f *Factory) shuffle(deck []Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := f.rnd.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}

// Rnd 暴露内部随机源给需要同源随机的调用方（如房间码生成）
func (f *Factory) Rnd() *rand.Rand {
	return f.rnd
}
