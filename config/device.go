package config

import "fmt"

// Device 描述手机外框的几何信息，全局只读。
type Device struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	NativeWidth  int    `json:"nativeWidth"`
	NativeHeight int    `json:"nativeHeight"`
	CornerRadius int    `json:"cornerRadius"`
	Bezel        int    `json:"bezel"`
	HasIsland    bool   `json:"hasIsland"` // 是否绘制灵动岛/刘海
}

var devices = []Device{
	{Key: "iphone-15-pro", Name: "iPhone 15 Pro", NativeWidth: 393, NativeHeight: 852, CornerRadius: 55, Bezel: 12, HasIsland: true},
	{Key: "iphone-15", Name: "iPhone 15", NativeWidth: 393, NativeHeight: 852, CornerRadius: 50, Bezel: 14, HasIsland: true},
	{Key: "pixel-8", Name: "Google Pixel 8", NativeWidth: 412, NativeHeight: 915, CornerRadius: 40, Bezel: 10},
	{Key: "samsung-s24", Name: "Samsung S24", NativeWidth: 412, NativeHeight: 915, CornerRadius: 35, Bezel: 8},
}

// Devices 返回全部设备（按展示顺序）。
func Devices() []Device {
	out := make([]Device, len(devices))
	copy(out, devices)
	return out
}

// LookupDevice 按键名查找设备。
func LookupDevice(key string) (Device, error) {
	for _, d := range devices {
		if d.Key == key {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("未知的设备：%s", key)
}
