package heatmap

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/heatmap"
	"github.com/selimhany/airreserve/internal/repository"
)

type HeatmapUseCase interface {
	Record(ctx context.Context, input RecordInput) (*domain.Interaction, error)
	Render(ctx context.Context, w io.Writer) error
	RenderToFile(ctx context.Context, path string) error
}

type Renderer interface {
	Render(points []heatmap.Point, w io.Writer) error
}

type HeatmapService struct {
	interactions repository.InteractionRepository
	renderer     Renderer
}

type RecordInput struct {
	Event        string `json:"event"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	ScrollTop    int    `json:"scroll_top"`
	ScrollHeight int    `json:"scroll_height"`
}

func NewHeatmapService(interactions repository.InteractionRepository, renderer Renderer) *HeatmapService {
	return &HeatmapService{interactions: interactions, renderer: renderer}
}

func (s *HeatmapService) Record(ctx context.Context, input RecordInput) (*domain.Interaction, error) {
	if input.Event != domain.InteractionClick && input.Event != domain.InteractionScroll {
		return nil, errors.New("event must be click or scroll")
	}

	interaction := &domain.Interaction{
		Event:        input.Event,
		X:            input.X,
		Y:            input.Y,
		ScrollTop:    input.ScrollTop,
		ScrollHeight: input.ScrollHeight,
	}
	if err := s.interactions.Insert(ctx, interaction); err != nil {
		return nil, err
	}
	return interaction, nil
}

// Render draws the click heatmap from every recorded click.
func (s *HeatmapService) Render(ctx context.Context, w io.Writer) error {
	clicks, err := s.interactions.ClickPoints(ctx)
	if err != nil {
		return err
	}

	points := make([]heatmap.Point, len(clicks))
	for i, c := range clicks {
		points[i] = heatmap.Point{X: c.X, Y: c.Y}
	}
	return s.renderer.Render(points, w)
}

// RenderToFile writes the image atomically: render to a temp file, then
// rename over the served path.
func (s *HeatmapService) RenderToFile(ctx context.Context, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "heatmap-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := s.Render(ctx, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ HeatmapUseCase = (*HeatmapService)(nil)
