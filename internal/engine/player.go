package engine

// Player is one seat's hand, won cards and score.
type Player struct {
	Name   string
	Hand   Counts
	Won    Counts
	Points int
}

func NewPlayer(name string) Player {
	return Player{Name: name}
}

func (p *Player) Draw(r Rank) {
	p.Hand[r]++
}

// Play removes one copy of r from the hand. It does nothing and reports false
// when the hand holds none; callers validate first.
func (p *Player) Play(r Rank) (Rank, bool) {
	if p.Hand[r] <= 0 {
		return r, false
	}
	p.Hand[r]--
	return r, true
}

func (p Player) NeedsCards() bool {
	return p.HandCount() < HandSize
}

func (p Player) HandCount() int { return p.Hand.Total() }

func (p Player) WonCount() int { return p.Won.Total() }

// AddWonCards credits a resolved pile. Tens and aces are worth ten each.
func (p *Player) AddWonCards(pile Counts) {
	for r, n := range pile {
		p.Won[r] += n
		if Rank(r).Scores() {
			p.Points += PointsPerCard * n
		}
	}
}

func (p Player) VisibleHand() map[Rank]int { return p.Hand.Visible() }

func (p Player) VisibleWon() map[Rank]int { return p.Won.Visible() }

func (p *Player) clear() {
	p.Hand = Counts{}
	p.Won = Counts{}
	p.Points = 0
}
