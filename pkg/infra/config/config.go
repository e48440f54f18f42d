// 指示: miu200521358
// Package config はハンドポーズ転送の設定を読み込む。
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/humanoid"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/mmath"
	"github.com/miu200521358/mu_handpose_transfer/pkg/domain/pose"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/logging"
	"github.com/miu200521358/mu_handpose_transfer/pkg/shared/base/merr"
	"github.com/miu200521358/mu_handpose_transfer/pkg/usecase/minteractor"
)

// ErrorIDConfigInvalid は設定不正のID。
const ErrorIDConfigInvalid = "25001"

// Config はアプリケーション設定を表す。
type Config struct {
	LogLevel               string             `yaml:"log_level" env:"HANDPOSE_LOG_LEVEL"`
	ReadyTimeout           time.Duration      `yaml:"ready_timeout" env:"HANDPOSE_READY_TIMEOUT"`
	VisualizeBones         bool               `yaml:"visualize_bones" env:"HANDPOSE_VISUALIZE_BONES"`
	BoneAxisScale          float64            `yaml:"bone_axis_scale"`
	OtelEndpoint           string             `yaml:"otel_endpoint" env:"HANDPOSE_OTEL_ENDPOINT"`
	OriginName             string             `yaml:"origin_name"`
	BodyPositionCorrection []float64          `yaml:"body_position_correction"`
	ChannelRange           ChannelRangeConfig `yaml:"channel_range"`
	Skeleton               SkeletonConfig     `yaml:"skeleton"`
	Wrist                  WristConfig        `yaml:"wrist"`
}

// ChannelRangeConfig は転送するマッスルチャンネル範囲を表す。
type ChannelRangeConfig struct {
	Lower int `yaml:"lower"`
	Upper int `yaml:"upper"`
}

// SkeletonConfig は合成スケルトンの各部長さを表す。
type SkeletonConfig struct {
	HipsHeight  float64 `yaml:"hips_height"`
	HipsLength  float64 `yaml:"hips_length"`
	SpineLength float64 `yaml:"spine_length"`
	ChestLength float64 `yaml:"chest_length"`
	NeckLength  float64 `yaml:"neck_length"`
	HeadLength  float64 `yaml:"head_length"`
	Shoulder    float64 `yaml:"shoulder"`
	UpperArm    float64 `yaml:"upper_arm"`
	LowerArm    float64 `yaml:"lower_arm"`
	Hand        float64 `yaml:"hand"`
	LegDistance float64 `yaml:"leg_distance"`
	UpperLeg    float64 `yaml:"upper_leg"`
	LowerLeg    float64 `yaml:"lower_leg"`
	Foot        float64 `yaml:"foot"`
	Toe         float64 `yaml:"toe"`
}

// WristPresetConfig は手首基準点の位置と角度(度)を表す。
type WristPresetConfig struct {
	Position []float64 `yaml:"position"`
	Angles   []float64 `yaml:"angles"`
}

// HandWristConfig は片手分の状態別プリセットを表す。
type HandWristConfig struct {
	Controller   WristPresetConfig `yaml:"controller"`
	HandTracking WristPresetConfig `yaml:"hand_tracking"`
}

// WristConfig は左右の手首プリセットを表す。
type WristConfig struct {
	Left  HandWristConfig `yaml:"left"`
	Right HandWristConfig `yaml:"right"`
}

// Default は既定設定を返す。
func Default() *Config {
	transfer := minteractor.NewHandPoseTransferConfig()
	params := transfer.SkeletonParams
	presets := minteractor.NewWristPresets()
	return &Config{
		LogLevel:               "info",
		ReadyTimeout:           transfer.ReadyTimeout,
		VisualizeBones:         transfer.VisualizeBones,
		BoneAxisScale:          transfer.BoneAxisScale,
		OriginName:             transfer.OriginName,
		BodyPositionCorrection: transfer.BodyPositionCorrection.Slice(),
		ChannelRange: ChannelRangeConfig{
			Lower: transfer.ChannelRange.Lower,
			Upper: transfer.ChannelRange.Upper,
		},
		Skeleton: SkeletonConfig{
			HipsHeight:  params.HipsHeight,
			HipsLength:  params.HipsLength,
			SpineLength: params.SpineLength,
			ChestLength: params.ChestLength,
			NeckLength:  params.NeckLength,
			HeadLength:  params.HeadLength,
			Shoulder:    params.Shoulder,
			UpperArm:    params.UpperArm,
			LowerArm:    params.LowerArm,
			Hand:        params.Hand,
			LegDistance: params.LegDistance,
			UpperLeg:    params.UpperLeg,
			LowerLeg:    params.LowerLeg,
			Foot:        params.Foot,
			Toe:         params.Toe,
		},
		Wrist: WristConfig{
			Left:  newHandWristConfig(presets.Left),
			Right: newHandWristConfig(presets.Right),
		},
	}
}

// newHandWristConfig は手首プリセットを設定形式へ変換する。
func newHandWristConfig(presets minteractor.HandWristPresets) HandWristConfig {
	return HandWristConfig{
		Controller: WristPresetConfig{
			Position: presets.Controller.Position.Slice(),
			Angles:   presets.Controller.Angles.Slice(),
		},
		HandTracking: WristPresetConfig{
			Position: presets.HandTracking.Position.Slice(),
			Angles:   presets.HandTracking.Angles.Slice(),
		},
	}
}

// Load は既定値、YAML、環境変数の順に重ねて設定を読み込む。path が空ならYAMLは読まない。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, merr.NewCommonError(ErrorIDConfigInvalid, err, "設定ファイルを読み込めません: %s", path)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, merr.NewCommonError(ErrorIDConfigInvalid, err, "設定ファイルを解析できません: %s", path)
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, merr.NewCommonError(ErrorIDConfigInvalid, err, "環境変数を解析できません")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv は環境変数で設定を上書きする。
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return newInvalid("log_level", err.Error())
	}
	if c.ReadyTimeout < 0 {
		return newInvalid("ready_timeout", "負の値は指定できません")
	}
	if c.BoneAxisScale <= 0 {
		return newInvalid("bone_axis_scale", "正の値を指定してください")
	}
	if c.OriginName == "" {
		return newInvalid("origin_name", "空にできません")
	}
	if len(c.BodyPositionCorrection) != 3 {
		return newInvalid("body_position_correction", "要素数は3です")
	}
	rng := pose.ChannelRange{Lower: c.ChannelRange.Lower, Upper: c.ChannelRange.Upper}
	if err := rng.Validate(humanoid.MuscleCount); err != nil {
		return newInvalid("channel_range", err.Error())
	}
	for name, length := range c.Skeleton.lengths() {
		if length < 0 {
			return newInvalid("skeleton."+name, "負の値は指定できません")
		}
	}
	for _, preset := range c.Wrist.presets() {
		if len(preset.config.Position) != 3 || len(preset.config.Angles) != 3 {
			return newInvalid("wrist."+preset.name, "position と angles の要素数は3です")
		}
	}
	return nil
}

// newInvalid は設定不正エラーを生成する。
func newInvalid(field string, reason string) error {
	return merr.NewCommonError(ErrorIDConfigInvalid, nil, "設定が不正です: %s: %s", field, reason)
}

// lengths は検証用に長さを名前付きで返す。
func (s SkeletonConfig) lengths() map[string]float64 {
	return map[string]float64{
		"hips_height":  s.HipsHeight,
		"hips_length":  s.HipsLength,
		"spine_length": s.SpineLength,
		"chest_length": s.ChestLength,
		"neck_length":  s.NeckLength,
		"head_length":  s.HeadLength,
		"shoulder":     s.Shoulder,
		"upper_arm":    s.UpperArm,
		"lower_arm":    s.LowerArm,
		"hand":         s.Hand,
		"leg_distance": s.LegDistance,
		"upper_leg":    s.UpperLeg,
		"lower_leg":    s.LowerLeg,
		"foot":         s.Foot,
		"toe":          s.Toe,
	}
}

// namedPreset は検証用の名前付きプリセット。
type namedPreset struct {
	name   string
	config WristPresetConfig
}

// presets は4種類の手首プリセットを返す。
func (w WristConfig) presets() []namedPreset {
	return []namedPreset{
		{"left.controller", w.Left.Controller},
		{"left.hand_tracking", w.Left.HandTracking},
		{"right.controller", w.Right.Controller},
		{"right.hand_tracking", w.Right.HandTracking},
	}
}

// Level はログレベルを返す。Validate 済みが前提。
func (c *Config) Level() logging.LogLevel {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return logging.LOG_LEVEL_INFO
	}
	return level
}

// TransferConfig はユースケース用の設定へ変換する。Validate 済みが前提。
func (c *Config) TransferConfig() minteractor.HandPoseTransferConfig {
	transfer := minteractor.NewHandPoseTransferConfig()
	transfer.OriginName = c.OriginName
	transfer.SkeletonParams = minteractor.SkeletonBuilderParams{
		HipsHeight:  c.Skeleton.HipsHeight,
		HipsLength:  c.Skeleton.HipsLength,
		SpineLength: c.Skeleton.SpineLength,
		ChestLength: c.Skeleton.ChestLength,
		NeckLength:  c.Skeleton.NeckLength,
		HeadLength:  c.Skeleton.HeadLength,
		Shoulder:    c.Skeleton.Shoulder,
		UpperArm:    c.Skeleton.UpperArm,
		LowerArm:    c.Skeleton.LowerArm,
		Hand:        c.Skeleton.Hand,
		LegDistance: c.Skeleton.LegDistance,
		UpperLeg:    c.Skeleton.UpperLeg,
		LowerLeg:    c.Skeleton.LowerLeg,
		Foot:        c.Skeleton.Foot,
		Toe:         c.Skeleton.Toe,
	}
	transfer.BodyPositionCorrection = toVec3(c.BodyPositionCorrection)
	transfer.ChannelRange = pose.ChannelRange{Lower: c.ChannelRange.Lower, Upper: c.ChannelRange.Upper}
	transfer.VisualizeBones = c.VisualizeBones
	transfer.BoneAxisScale = c.BoneAxisScale
	transfer.ReadyTimeout = c.ReadyTimeout
	return transfer
}

// WristPresets は手首プリセットへ変換する。Validate 済みが前提。
func (c *Config) WristPresets() minteractor.WristPresets {
	return minteractor.WristPresets{
		Left:  c.Wrist.Left.toPresets(),
		Right: c.Wrist.Right.toPresets(),
	}
}

// toPresets は片手分のプリセットへ変換する。
func (h HandWristConfig) toPresets() minteractor.HandWristPresets {
	return minteractor.HandWristPresets{
		Controller: minteractor.WristPreset{
			Position: toVec3(h.Controller.Position),
			Angles:   toVec3(h.Controller.Angles),
		},
		HandTracking: minteractor.WristPreset{
			Position: toVec3(h.HandTracking.Position),
			Angles:   toVec3(h.HandTracking.Angles),
		},
	}
}

// toVec3 は3要素の配列をベクトルへ変換する。
func toVec3(values []float64) mmath.Vec3 {
	if len(values) != 3 {
		return mmath.ZeroVec3()
	}
	return mmath.NewVec3(values[0], values[1], values[2])
}
