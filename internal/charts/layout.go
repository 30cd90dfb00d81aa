package charts

// Layout sets the render area of the charts built for one dashboard.
// Zero fields keep the defaults of the Build functions.
type Layout struct {
	DonutWidth  int
	DonutHeight int
	ChartWidth  int
	ChartHeight int
}

// Donut applies the layout to a donut spec
func (l Layout) Donut(s DonutSpec) DonutSpec {
	if l.DonutWidth > 0 {
		s.Width = l.DonutWidth
	}
	if l.DonutHeight > 0 {
		s.Height = l.DonutHeight
	}
	return s
}

// Pie applies the layout to a pie spec
func (l Layout) Pie(s PieSpec) PieSpec {
	if l.ChartWidth > 0 {
		s.Width = l.ChartWidth
	}
	if l.ChartHeight > 0 {
		s.Height = l.ChartHeight
	}
	return s
}

// Bar applies the layout to a bar spec
func (l Layout) Bar(s BarSpec) BarSpec {
	if l.ChartWidth > 0 {
		s.Width = l.ChartWidth
	}
	if l.ChartHeight > 0 {
		s.Height = l.ChartHeight
	}
	return s
}
