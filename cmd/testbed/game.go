package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	playrho "github.com/gmaf/PlayRho"
)

const (
	screenWidth  = 1280
	screenHeight = 800
)

type Game struct {
	scenePath string
	scene     *Scene
	script    *stepScript
	watcher   *watcher
	camera    *camera
	stepConf  playrho.StepConf
	stats     playrho.StepStats
	stepCount int
	elapsed   float64
	paused    bool
	loadErr   error
	face      *etext.GoXFace
}

func NewGame(scenePath string) *Game {
	game := &Game{
		scenePath: scenePath,
		stepConf:  playrho.MakeStepConf().SetTime(1.0 / 60),
		face:      etext.NewGoXFace(basicfont.Face7x13),
	}
	game.reload()

	w, err := newWatcher(filepath.Dir(scenePath))
	if err != nil {
		log.Printf("testbed: watch disabled: %v", err)
	} else {
		game.watcher = w
	}
	return game
}

func (g *Game) reload() {
	scene, err := LoadScene(g.scenePath)
	if err != nil {
		g.loadErr = err
		log.Printf("testbed: load %s: %v", g.scenePath, err)
		return
	}
	g.loadErr = nil
	g.scene = scene
	g.camera = newCamera(scene.Camera, screenWidth, screenHeight)
	g.stats = playrho.MakeStepStats()
	g.stepCount = 0
	g.elapsed = 0
	g.script = nil
	if scene.ScriptPath != "" {
		script, err := loadStepScript(scene.ScriptPath, scene)
		if err != nil {
			g.loadErr = fmt.Errorf("script %s: %w", scene.ScriptPath, err)
			log.Printf("testbed: %v", g.loadErr)
			return
		}
		g.script = script
	}
	log.Printf("testbed: loaded %s (%d bodies)", g.scenePath, scene.World.GetBodyCount())
}

func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("testbed: %s changed, reloading", name)
			g.reload()
		case err := <-g.watcher.Errors:
			log.Printf("testbed: watcher: %v", err)
		default:
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	if g.scene == nil {
		return nil
	}
	singleStep := g.paused && inpututil.IsKeyJustPressed(ebiten.KeyS)
	if g.paused && !singleStep {
		return nil
	}
	g.step()
	return nil
}

func (g *Game) step() {
	dt := g.stepConf.DeltaTime
	if g.script != nil {
		if err := g.script.run(dt, g.elapsed); err != nil {
			log.Printf("testbed: script: %v", err)
			g.script = nil
		}
	}
	stats, err := g.scene.World.Step(g.stepConf)
	if err != nil {
		log.Printf("testbed: step: %v", err)
		return
	}
	g.stats = stats
	g.stepCount++
	g.elapsed += dt
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.scene == nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("failed to load %s:\n%v", g.scenePath, g.loadErr), 10, 10)
		return
	}
	drawWorld(screen, g.scene.World, g.camera)
	g.drawHUD(screen)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	title := g.scene.Name
	if title == "" {
		title = filepath.Base(g.scenePath)
	}
	if g.paused {
		title += "  [paused — space resumes, s steps]"
	}
	op := &etext.DrawOptions{}
	op.GeoM.Translate(10, 8)
	op.ColorScale.ScaleWithColor(color.White)
	etext.Draw(screen, title, g.face, op)

	hud := fmt.Sprintf(
		"step %d  t=%.2fs  bodies=%d contacts=%d\n"+
			"reg: islands=%d/%d velIters=%d posIters=%d slept=%d minSep=%.4f\n"+
			"toi: islands=%d contacts=%d minSep=%.4f stepComplete=%v",
		g.stepCount, g.elapsed,
		g.scene.World.GetBodyCount(), g.scene.World.GetContactCount(),
		g.stats.Reg.IslandsSolved, g.stats.Reg.IslandsFound,
		g.stats.Reg.SumVelIters, g.stats.Reg.SumPosIters,
		g.stats.Reg.BodiesSlept, g.stats.Reg.MinSeparation,
		g.stats.Toi.IslandsFound, g.stats.Toi.ContactsFound,
		g.stats.Toi.MinSeparation, g.scene.World.IsStepComplete(),
	)
	ebitenutil.DebugPrintAt(screen, hud, 10, 28)
	if g.loadErr != nil {
		ebitenutil.DebugPrintAt(screen, g.loadErr.Error(), 10, 80)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
