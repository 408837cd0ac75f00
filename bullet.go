package main

// BulletConfig holds the parameters shared by every fired bullet
type BulletConfig struct {
	Speed  float64 `json:"speed" msgpack:"s"`
	Radius float64 `json:"radius" msgpack:"r"`
	Mass   float64 `json:"mass" msgpack:"m"`
	Field  float64 `json:"field" msgpack:"g"`
}

// Bullet is a projectile fired by a ship
type Bullet struct {
	OwnerID uint8 // exempt from hitting its owner, credited with kills
	Body    Body
}

// ToState converts to protocol state
func (b *Bullet) ToState() EntityState {
	return EntityState{
		Kind: KindBullet,
		ID:   b.OwnerID,
		X:    b.Body.Location.X,
		Y:    b.Body.Location.Y,
		R:    b.Body.Radius,
	}
}
