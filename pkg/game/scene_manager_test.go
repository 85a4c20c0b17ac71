package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// mockSaveableScene 记录 SaveOnExit 调用
type mockSaveableScene struct {
	MockScene
	saveCalled bool
	result     bool
}

func (m *mockSaveableScene) SaveOnExit() bool {
	m.saveCalled = true
	return m.result
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}

	sm.Draw(nil)
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerNoScene verifies that Update and Draw handle a nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit without a scene should succeed")
	}
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
	if sm.GetCurrentScene() != scene2 {
		t.Error("GetCurrentScene should return scene2")
	}
}

// TestSceneManagerSaveOnExit 只有实现 Saveable 的场景会被保存
func TestSceneManagerSaveOnExit(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		want  bool
	}{
		{name: "plain scene", scene: &MockScene{}, want: true},
		{name: "save succeeds", scene: &mockSaveableScene{result: true}, want: true},
		{name: "save fails", scene: &mockSaveableScene{result: false}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewSceneManager()
			sm.SwitchTo(tt.scene)

			if got := sm.SaveOnExit(); got != tt.want {
				t.Errorf("SaveOnExit(): got %v, want %v", got, tt.want)
			}
			if s, ok := tt.scene.(*mockSaveableScene); ok && !s.saveCalled {
				t.Error("SaveOnExit was not forwarded to the scene")
			}
		})
	}
}
