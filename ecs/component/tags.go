package component

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]("enemy_tag")

func (*EnemyTag) ComponentKind() Kind { return EnemyTagComponent.Kind() }

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]("projectile_tag")

func (*ProjectileTag) ComponentKind() Kind { return ProjectileTagComponent.Kind() }
